package secretsmanager

import (
	"strings"
	"testing"
)

func countClass(s, chars string) int {
	n := 0
	for _, c := range s {
		if strings.ContainsRune(chars, c) {
			n++
		}
	}
	return n
}

func TestGeneratePassword_Default(t *testing.T) {
	password, err := GeneratePassword()
	if err != nil {
		t.Fatalf("GeneratePassword() error = %v", err)
	}
	if len(password) != 64 {
		t.Errorf("password length = %d, want 64", len(password))
	}

	// The default split gives every class length/4 characters.
	for _, class := range []struct {
		name  string
		chars string
	}{
		{"lowercase", lowercaseChars},
		{"uppercase", uppercaseChars},
		{"digits", digitChars},
		{"special", specialChars},
	} {
		if got := countClass(password, class.chars); got != 16 {
			t.Errorf("%s count = %d, want 16", class.name, got)
		}
	}
}

func TestGeneratePassword_Length(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		want    int
		special int
	}{
		{"divisible by four", 32, 32, 8},
		{"remainder goes to special", 10, 10, 4},
		{"non-positive falls back", 0, 64, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := GeneratePassword(WithPasswordLength(tt.length))
			if err != nil {
				t.Fatalf("GeneratePassword() error = %v", err)
			}
			if len(password) != tt.want {
				t.Errorf("password length = %d, want %d", len(password), tt.want)
			}
			if got := countClass(password, specialChars); got != tt.special {
				t.Errorf("special count = %d, want %d", got, tt.special)
			}
		})
	}
}

func TestGeneratePassword_ClassCounts(t *testing.T) {
	password, err := GeneratePassword(
		WithLowercase(5),
		WithUppercase(3),
		WithDigits(2),
	)
	if err != nil {
		t.Fatalf("GeneratePassword() error = %v", err)
	}

	// Explicit counts determine the length; the length option is ignored.
	if len(password) != 10 {
		t.Errorf("password length = %d, want 10", len(password))
	}
	if got := countClass(password, lowercaseChars); got != 5 {
		t.Errorf("lowercase count = %d, want 5", got)
	}
	if got := countClass(password, uppercaseChars); got != 3 {
		t.Errorf("uppercase count = %d, want 3", got)
	}
	if got := countClass(password, digitChars); got != 2 {
		t.Errorf("digit count = %d, want 2", got)
	}
	if got := countClass(password, specialChars); got != 0 {
		t.Errorf("special count = %d, want 0", got)
	}
}

func TestGeneratePassword_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		password, err := GeneratePassword(WithPasswordLength(20))
		if err != nil {
			t.Fatalf("GeneratePassword() error = %v", err)
		}
		if seen[password] {
			t.Fatalf("duplicate password after %d draws", i)
		}
		seen[password] = true
	}
}
