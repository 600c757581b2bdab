// Package access decides whether a requester may read or modify a file
// record.
package access

import (
	"files-manager/internal/apperr"
	"files-manager/internal/models"
)

type Op int

const (
	OpRead Op = iota
	OpWrite
)

// Requester is the identity behind a request. The zero value is Anonymous.
type Requester struct {
	userID        int64
	authenticated bool
}

var Anonymous = Requester{}

func User(id int64) Requester {
	return Requester{userID: id, authenticated: true}
}

func (r Requester) UserID() (int64, bool) {
	return r.userID, r.authenticated
}

type Reason int

const (
	RecordAbsent Reason = iota + 1
	OwnerMismatch
	NotPublic
)

func (r Reason) String() string {
	switch r {
	case RecordAbsent:
		return "record absent"
	case OwnerMismatch:
		return "owner mismatch"
	case NotPublic:
		return "not public"
	}
	return "unknown"
}

// Denied is returned by Check. It matches apperr.ErrNotFound so the transport
// renders every reason identically; Reason is for logs and tests only.
type Denied struct {
	Reason Reason
}

func (d *Denied) Error() string {
	return apperr.ErrNotFound.Error()
}

func (d *Denied) Is(target error) bool {
	return target == apperr.ErrNotFound
}

// Check returns nil when req may perform op on f, and a *Denied otherwise.
// A nil f means the record does not exist.
func Check(req Requester, f *models.File, op Op) error {
	if f == nil {
		return &Denied{Reason: RecordAbsent}
	}

	if op == OpRead && f.IsPublic {
		return nil
	}

	if !req.authenticated {
		return &Denied{Reason: NotPublic}
	}

	if req.userID != f.UserID {
		return &Denied{Reason: OwnerMismatch}
	}

	return nil
}
