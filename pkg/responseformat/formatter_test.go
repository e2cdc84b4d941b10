package responseformat

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type sample struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

func TestWriteResponseJSON(t *testing.T) {
	f := NewFormatter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/climate", nil)

	if err := f.WriteResponse(rec, req, sample{Day: "01/01", Value: 1.5}, map[string]string{"Cache-Control": "max-age=60"}); err != nil {
		t.Fatal(err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "max-age=60" {
		t.Errorf("Cache-Control = %q", cc)
	}

	var got sample
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Day != "01/01" || got.Value != 1.5 {
		t.Errorf("decoded %+v", got)
	}
}

func TestWriteResponseMsgPack(t *testing.T) {
	f := NewFormatter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/climate?format=msgpack", nil)

	if err := f.WriteResponse(rec, req, sample{Day: "12/31", Value: -3}, nil); err != nil {
		t.Fatal(err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-msgpack" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got map[string]any
	if err := msgpack.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got["day"] != "12/31" {
		t.Errorf("decoded %+v, expected json tag names as keys", got)
	}
}
