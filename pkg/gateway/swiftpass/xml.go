package swiftpass

import (
	"bytes"
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const rootElement = "xml"

// Response is a decoded gateway reply. Leaves are strings, elements with
// children are nested maps and repeated elements become slices.
type Response map[string]interface{}

// String returns the text value of key, or "" when it is absent or not a leaf.
func (r Response) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// EncodeXML serializes params as <xml><key>value</key>...</xml> in key order.
// Nil values are skipped.
func EncodeXML(params Params) ([]byte, error) {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteString("<" + rootElement + ">")
	for _, k := range keys {
		s, err := field(k, params[k])
		if err != nil {
			return nil, err
		}
		buf.WriteString("<" + k + ">")
		if err := xml.EscapeText(&buf, []byte(s)); err != nil {
			return nil, errors.Wrap(err, "escape xml text")
		}
		buf.WriteString("</" + k + ">")
	}
	buf.WriteString("</" + rootElement + ">")
	return buf.Bytes(), nil
}

// DecodeXML parses a gateway envelope and returns the children of its root.
func DecodeXML(body []byte) (Response, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, &Error{Kind: KindXMLParse, Message: "no root element", Raw: body}
		}
		if err != nil {
			return nil, &Error{Kind: KindXMLParse, Message: "malformed xml", Raw: body, Err: err}
		}
		if _, ok := tok.(xml.StartElement); !ok {
			continue
		}
		v, err := decodeElement(dec)
		if err != nil {
			return nil, &Error{Kind: KindXMLParse, Message: "malformed xml", Raw: body, Err: err}
		}
		if err := expectEOF(dec); err != nil {
			return nil, &Error{Kind: KindXMLParse, Message: "content after root element", Raw: body, Err: err}
		}
		if m, ok := v.(map[string]interface{}); ok {
			return Response(m), nil
		}
		return Response{}, nil
	}
}

// expectEOF allows only whitespace, comments and processing instructions
// after the root element.
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.Errorf("unexpected text %q", string(bytes.TrimSpace(t)))
			}
		case xml.StartElement:
			return errors.Errorf("unexpected element <%s>", t.Name.Local)
		default:
			return errors.Errorf("unexpected token %T", tok)
		}
	}
}

// decodeElement consumes tokens up to the end of the current element.
func decodeElement(dec *xml.Decoder) (interface{}, error) {
	var (
		text     strings.Builder
		children map[string]interface{}
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			v, err := decodeElement(dec)
			if err != nil {
				return nil, err
			}
			if children == nil {
				children = make(map[string]interface{})
			}
			name := t.Name.Local
			switch prev := children[name].(type) {
			case nil:
				children[name] = v
			case []interface{}:
				children[name] = append(prev, v)
			default:
				children[name] = []interface{}{prev, v}
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if children != nil {
				return children, nil
			}
			return strings.TrimSpace(text.String()), nil
		}
	}
}
