package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenizeSimpleCommand(t *testing.T) {
	got := New("echo hello world").Tokens()
	want := []Token{
		{Type: TOKEN, Value: "echo", Offset: 0},
		{Type: TOKEN, Value: "hello", Offset: 5},
		{Type: TOKEN, Value: "world", Offset: 11},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "pipe",
			input: "ls | wc",
			want: []Token{
				{Type: TOKEN, Value: "ls", Offset: 0},
				{Type: PIPE, Offset: 3},
				{Type: TOKEN, Value: "wc", Offset: 5},
			},
		},
		{
			name:  "input redirection",
			input: "sort < data",
			want: []Token{
				{Type: TOKEN, Value: "sort", Offset: 0},
				{Type: REDIR_IN, Offset: 5},
				{Type: TOKEN, Value: "data", Offset: 7},
			},
		},
		{
			name:  "append redirection",
			input: "echo hi >> log",
			want: []Token{
				{Type: TOKEN, Value: "echo", Offset: 0},
				{Type: TOKEN, Value: "hi", Offset: 5},
				{Type: REDIR_APPEND, Offset: 8},
				{Type: TOKEN, Value: "log", Offset: 11},
			},
		},
		{
			name:  "truncate redirection",
			input: "cat > out.txt",
			want: []Token{
				{Type: TOKEN, Value: "cat", Offset: 0},
				{Type: REDIR_OUT, Offset: 4},
				{Type: TOKEN, Value: "out.txt", Offset: 6},
			},
		},
		{
			name:  "background",
			input: "sleep 5 &",
			want: []Token{
				{Type: TOKEN, Value: "sleep", Offset: 0},
				{Type: TOKEN, Value: "5", Offset: 6},
				{Type: AMP, Offset: 8},
			},
		},
		{
			name:  "operators without whitespace",
			input: "a|b>c",
			want: []Token{
				{Type: TOKEN, Value: "a", Offset: 0},
				{Type: PIPE, Offset: 1},
				{Type: TOKEN, Value: "b", Offset: 2},
				{Type: REDIR_OUT, Offset: 3},
				{Type: TOKEN, Value: "c", Offset: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.input).Tokens()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeEmptyAndWhitespace(t *testing.T) {
	for _, input := range []string{"", "   ", "\t \t"} {
		if got := New(input).Tokens(); len(got) != 0 {
			t.Errorf("Tokens(%q) = %v, want none", input, got)
		}
	}
}

func TestNextAfterEOF(t *testing.T) {
	l := New("x")
	l.Next()
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Type != EOF {
			t.Fatalf("call %d after end: got %v, want EOF", i, tok)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: TOKEN, Value: "ls", Offset: 2}
	if got := tok.String(); got != `TOKEN("ls")@2` {
		t.Errorf("String() = %q", got)
	}
	if got := (Token{Type: PIPE, Offset: 4}).String(); got != "PIPE@4" {
		t.Errorf("String() = %q", got)
	}
}
