package embedding

import "testing"

func TestSimpleTokenizerShape(t *testing.T) {
	ids, attn, types := SimpleTokenizer{}.Tokenize("is my upi pin safe", 10)
	if len(ids) != 10 || len(attn) != 10 || len(types) != 10 {
		t.Fatalf("all sequences must be maxTokens long: %d/%d/%d", len(ids), len(attn), len(types))
	}
	if ids[0] != tokenCLS {
		t.Errorf("sequence must open with CLS, got %d", ids[0])
	}
	if ids[6] != tokenSEP {
		t.Errorf("sequence must close with SEP after the words, got %d", ids[6])
	}
	for i := 0; i <= 6; i++ {
		if attn[i] != 1 {
			t.Errorf("attention[%d] should cover the token, got %d", i, attn[i])
		}
	}
	if attn[7] != 0 {
		t.Error("padding must not be attended")
	}
}

func TestSimpleTokenizerTruncatesLongQuestions(t *testing.T) {
	ids, _, _ := SimpleTokenizer{}.Tokenize("a b c d e f g h i j", 5)
	if len(ids) != 5 {
		t.Fatalf("len(ids)=%d", len(ids))
	}
	for _, id := range ids {
		if id < 0 || id >= vocabSize {
			t.Errorf("token id %d outside vocabulary", id)
		}
	}
}

func TestHashStringDeterministic(t *testing.T) {
	if hashString("phishing") == 0 {
		t.Error("hash should be non-zero for a non-empty word")
	}
	if hashString("phishing") != hashString("phishing") {
		t.Error("hash must be deterministic")
	}
	if hashString("phishing") < 0 {
		t.Error("hash must be non-negative")
	}
}
