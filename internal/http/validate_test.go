package http

import "testing"

func TestValidateName(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyzabcde"
	ok := "Smith"

	tests := []struct {
		name    string
		first   string
		last    *string
		wantErr bool
	}{
		{"valid first only", "Ann", nil, false},
		{"valid with last", "Gungun", &ok, false},
		{"first too short", "Al", nil, true},
		{"first too long", long, nil, true},
		{"last too long", "Ann", &long, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateName(tt.first, tt.last)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateName(%q) error = %v, wantErr %v", tt.first, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"a@x.com", false},
		{"gungun.sharma@example.co.in", false},
		{"", true},
		{"not-an-email", true},
		{"Ann <a@x.com>", true},
		{"a@x.com extra", true},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := validateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"strong", "Str0ng!Pass", false},
		{"too short", "S0r!t", true},
		{"no uppercase", "str0ng!pass", true},
		{"no lowercase", "STR0NG!PASS", true},
		{"no digit", "Strong!Pass", true},
		{"no symbol", "Str0ngPass", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}
