package session

import "testing"

func TestLandingPath(t *testing.T) {
	tests := []struct {
		name string
		sess *Session
		want string
	}{
		{name: "anonymous", sess: nil, want: PathLogin},
		{name: "admin", sess: &Session{Role: RoleAdmin}, want: PathAdmin},
		{name: "teller", sess: &Session{Role: RoleBankTeller}, want: PathTeller},
		{name: "client", sess: &Session{Role: RoleClient}, want: PathClient},
		{name: "unknown_role_falls_to_client", sess: &Session{Role: Role("AUDITOR")}, want: PathClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LandingPath(tt.sess); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	full := Session{Token: "t", Role: RoleClient, UserID: "7", DisplayName: "Ann"}
	if err := full.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := []Session{
		{Role: RoleClient, UserID: "7", DisplayName: "Ann"},
		{Token: "t", UserID: "7", DisplayName: "Ann"},
		{Token: "t", Role: RoleClient, DisplayName: "Ann"},
		{Token: "t", Role: RoleClient, UserID: "7"},
	}
	for i, s := range missing {
		if err := s.Validate(); err != ErrIncomplete {
			t.Fatalf("case %d: got %v, want ErrIncomplete", i, err)
		}
	}
}

func TestParseRole(t *testing.T) {
	if got := ParseRole(" bank_teller "); got != RoleBankTeller {
		t.Fatalf("got %q", got)
	}
	if ParseRole("root").IsValid() {
		t.Fatalf("unknown role should not be valid")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	in := Session{Token: "tok", Role: RoleBankTeller, UserID: "12", DisplayName: "Teller Tom"}

	out, err := FromFields(in.Fields())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestFromFieldsMissingFieldIsAbsent(t *testing.T) {
	fields := Session{Token: "tok", Role: RoleClient, UserID: "1", DisplayName: "A"}.Fields()
	delete(fields, FieldName)

	if _, err := FromFields(fields); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
