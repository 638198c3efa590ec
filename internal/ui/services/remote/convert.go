package remote

import (
	"fmt"

	"github.com/tidwall/gjson"

	"jselect/internal/domain"
)

// ConvertResponse turns a response body into options, in document order.
// Accepted shapes are an object mapping value to label, or an array of
// {id, text, ...} records whose extra fields become metadata. reuse, when
// not nil, returns an already selected option for a value so it is kept
// instead of duplicated. Each reused option is handed out once; later records
// with the same value get options of their own.
func ConvertResponse(raw []byte, reuse func(value string) *domain.Option) ([]*domain.Option, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedResponse
	}
	doc := gjson.ParseBytes(raw)

	var out []*domain.Option
	reused := make(map[*domain.Option]bool)
	add := func(value, label string, meta map[string]string) {
		if reuse != nil {
			if o := reuse(value); o != nil && !reused[o] {
				reused[o] = true
				out = append(out, o)
				return
			}
		}
		out = append(out, &domain.Option{Value: value, Label: label, Metadata: meta})
	}

	switch {
	case doc.Type == gjson.Null:
		return nil, nil
	case doc.IsObject():
		doc.ForEach(func(key, value gjson.Result) bool {
			add(key.String(), labelOf(value), nil)
			return true
		})
	case doc.IsArray():
		var err error
		doc.ForEach(func(idx, rec gjson.Result) bool {
			if !rec.IsObject() {
				err = fmt.Errorf("%w: record %d is not an object", ErrMalformedResponse, idx.Int())
				return false
			}
			id := rec.Get("id")
			if !id.Exists() {
				err = fmt.Errorf("%w: record %d has no id", ErrMalformedResponse, idx.Int())
				return false
			}
			var meta map[string]string
			rec.ForEach(func(k, v gjson.Result) bool {
				if k.String() == "id" || k.String() == "text" {
					return true
				}
				if meta == nil {
					meta = make(map[string]string)
				}
				meta[k.String()] = v.String()
				return true
			})
			add(id.String(), labelOf(rec.Get("text")), meta)
			return true
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: expected object or array, got %s", ErrMalformedResponse, doc.Type)
	}
	return out, nil
}

func labelOf(v gjson.Result) string {
	if v.Type == gjson.Null {
		return ""
	}
	return v.String()
}

// ParseItems reads a serialised selection: an object mapping value to label,
// an array of {id, text} records or of plain values, a single string, or null.
func ParseItems(raw string) ([]domain.Item, error) {
	if !gjson.Valid(raw) {
		return nil, ErrMalformedResponse
	}
	doc := gjson.Parse(raw)
	var items []domain.Item
	switch {
	case doc.Type == gjson.Null:
		return nil, nil
	case doc.IsObject():
		doc.ForEach(func(key, value gjson.Result) bool {
			items = append(items, domain.Item{Value: key.String(), Label: labelOf(value)})
			return true
		})
	case doc.IsArray():
		doc.ForEach(func(_, rec gjson.Result) bool {
			if rec.IsObject() {
				items = append(items, domain.Item{Value: rec.Get("id").String(), Label: labelOf(rec.Get("text"))})
			} else {
				items = append(items, domain.Item{Value: rec.String()})
			}
			return true
		})
	default:
		items = append(items, domain.Item{Value: doc.String()})
	}
	return items, nil
}
