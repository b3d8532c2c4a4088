package api

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "Sup3r$ecret", nil},
		{"too short", "Ab1$", ErrPasswordTooShort},
		{"no uppercase", "sup3r$ecret", ErrPasswordNoUppercase},
		{"no lowercase", "SUP3R$ECRET", ErrPasswordNoLowercase},
		{"no digit", "Super$ecret", ErrPasswordNoDigit},
		{"no special", "Sup3rSecret", ErrPasswordNoSpecial},
		{"contains space", "Sup3r $ecret", ErrPasswordContainsSpaces},
	}
	for _, tt := range tests {
		if err := ValidatePassword(tt.password); err != tt.wantErr {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidatePasswordLengthBounds(t *testing.T) {
	long := make([]byte, MaxPasswordLength+1)
	for i := range long {
		long[i] = 'a'
	}
	long[0], long[1], long[2] = 'A', '1', '$'
	if err := ValidatePassword(string(long)); err != ErrPasswordTooLong {
		t.Fatalf("over-length password: got %v, want %v", err, ErrPasswordTooLong)
	}
}
