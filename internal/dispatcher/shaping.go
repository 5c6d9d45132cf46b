package dispatcher

import (
	"fmt"
	"reflect"

	"github.com/pvkg/pvqa/internal/tools"
)

// shapeItemCap is the dispatcher's own truncation cap on top of whatever
// per-tool cap the library already applied.
const shapeItemCap = 30

// Shape builds the view the observer LLM sees. A top-level slice payload
// longer than 30 items is truncated to 30, with the truncation flag reported
// separately; slice elements are passed through unchanged. Any other payload
// goes through dropBlobs. Fields are neither renamed nor reordered: the
// result types carry no json tags, so keys and labels keep their Go field
// order (surrogate keys first in the graphstore entity types).
func Shape(payload any) (shaped any, truncated bool) {
	if payload == nil {
		return nil, false
	}
	v := reflect.ValueOf(payload)
	if v.Kind() == reflect.Slice {
		if v.Len() > shapeItemCap {
			out := reflect.MakeSlice(v.Type(), shapeItemCap, shapeItemCap)
			reflect.Copy(out, v.Slice(0, shapeItemCap))
			return out.Interface(), true
		}
		return payload, false
	}
	return dropBlobs(payload), false
}

// dropBlobs zeroes the opaque fields named Payload or Embedding at the top
// level of a struct payload. Such fields nested in inner structs or slices,
// or in the elements of a slice payload, are left in place. It operates
// structurally via reflection rather than per-type switches so new tool
// result types don't need to be registered here.
func dropBlobs(payload any) any {
	v := reflect.ValueOf(payload)
	if v.Kind() != reflect.Struct {
		return payload
	}
	t := v.Type()
	clone := reflect.New(t).Elem()
	clone.Set(v)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		switch f.Name {
		case "Payload", "Embedding":
			fv := clone.Field(i)
			if fv.CanSet() {
				fv.Set(reflect.Zero(fv.Type()))
			}
		}
	}
	return clone.Interface()
}

// Summarize produces the one-line trace-digest summary for a tool call,
// used by the evidence accumulator's SummarizeForPrompt instead of the raw
// payload on later iterations.
func Summarize(tool tools.Name, payload any) string {
	count := collectionLen(payload)
	if count < 0 {
		return fmt.Sprintf("%s: ok", tool)
	}
	return fmt.Sprintf("%s: %d item(s)", tool, count)
}

func collectionLen(payload any) int {
	v := reflect.ValueOf(payload)
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len()
	default:
		return -1
	}
}
