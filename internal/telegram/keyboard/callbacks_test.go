package keyboard

import "testing"

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data    string
		action  string
		value   string
		wantErr bool
	}{
		{data: "act:skip", action: "act", value: "skip"},
		{data: "mode:system design", action: "mode", value: "system design"},
		{data: "report:pdf", action: "report", value: "pdf"},
		{data: "act:", action: "act", value: ""},
		{data: "noseparator", wantErr: true},
		{data: ":value", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCallback(tt.data)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.data)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.data, err)
			continue
		}
		if got.Action != tt.action || got.Value != tt.value {
			t.Errorf("%q: got %+v", tt.data, got)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	got, err := ParseCallback(EncodeCallback(ActionAct, ActRetry))
	if err != nil || got.Action != ActionAct || got.Value != ActRetry {
		t.Fatalf("unexpected %+v, %v", got, err)
	}
}

func TestKeyboardsFitCallbackLimit(t *testing.T) {
	b := NewBuilder()
	for _, kb := range [][][]string{
		callbackData(b.StartKeyboard().InlineKeyboard),
		callbackData(b.ModeKeyboard().InlineKeyboard),
		callbackData(b.InterviewKeyboard().InlineKeyboard),
		callbackData(b.SummaryKeyboard().InlineKeyboard),
	} {
		for _, row := range kb {
			for _, data := range row {
				if len(data) > 64 {
					t.Errorf("callback data %q exceeds 64 bytes", data)
				}
				if _, err := ParseCallback(data); err != nil {
					t.Errorf("unparsable callback %q", data)
				}
			}
		}
	}
}
