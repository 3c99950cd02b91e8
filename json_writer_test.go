package foliosim

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("field order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("command", "deposit")
		w.Append("date", "2023-01-02")
		w.Append("amount", 1000)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"command":"deposit","date":"2023-01-02","amount":1000}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional skips zero values", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("quantity", 0) // zero through Append must stay.
		w.Optional("memo", "")
		w.Optional("gain", 0)
		w.Optional("security", "AAPL")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"quantity":0,"security":"AAPL"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed raw object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("command", "buy")
		w.Embed(json.RawMessage(`{"security":"MSFT","quantity":3}`))
		w.Append("amount", 900)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"command":"buy","security":"MSFT","quantity":3,"amount":900}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed from struct", func(t *testing.T) {
		base := struct {
			Command string `json:"command"`
			Memo    string `json:"memo,omitempty"`
		}{Command: "sell", Memo: "tax-loss harvest"}

		var w jsonObjectWriter
		w.EmbedFrom(base)
		w.Append("security", "VTI")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"command":"sell","memo":"tax-loss harvest","security":"VTI"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("sticky error", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("bad", func() {}) // functions cannot marshal.
		w.Append("good", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("expected an error for an unmarshalable value, got none")
		}
	})
}
