package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONWriter(t *testing.T) {
	doc := sampleDoc()
	doc.Analysis = "Use <interfaces> & small packages."

	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, doc); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "<interfaces> &") {
		t.Error("JSON output should not escape HTML")
	}

	var decoded Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.RunID != doc.RunID || decoded.FilesAnalyzed != 12 || decoded.Analysis != doc.Analysis {
		t.Errorf("decoded = %+v", decoded)
	}
	if !decoded.GeneratedAt.Equal(doc.GeneratedAt) {
		t.Errorf("GeneratedAt = %v", decoded.GeneratedAt)
	}
}

func TestJSONWriter_OmitsEmpty(t *testing.T) {
	doc := sampleDoc()
	doc.Branch = ""
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"branch"`, `"error"`, `"cached"`} {
		if strings.Contains(buf.String(), key) {
			t.Errorf("unexpected key %s", key)
		}
	}
}
