package service

import "testing"

func TestErrorClasses(t *testing.T) {
	conflicts := []error{
		ErrEmailTaken,
		ErrDuplicateRequest,
		ErrNoSeatsAvailable,
		ErrAlreadyRated,
		ErrRequestNotPending,
		ErrReportAlreadyHandled,
	}
	for _, err := range conflicts {
		if !Conflict(err) {
			t.Fatalf("expected %v classified as conflict", err)
		}
		if InvalidArgument(err) || NotFound(err) || Forbidden(err) || Unauthenticated(err) {
			t.Fatalf("%v classified in more than one class", err)
		}
	}

	if !InvalidArgument(ErrInvalidPIN) {
		t.Fatalf("expected invalid PIN classified as invalid argument")
	}
	if !Forbidden(ErrCannotModerateAdmin) {
		t.Fatalf("expected admin moderation guard classified as forbidden")
	}
	if !NotFound(ErrRequestNotFound) {
		t.Fatalf("expected missing request classified as not found")
	}
}
