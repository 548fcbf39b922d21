package service

import "errors"

// Error taxonomy. Handlers map these onto HTTP statuses with errors.Is:
// not-found 404, forbidden 403, invalid-argument 400, conflict 409,
// unauthenticated 401.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRideNotFound    = errors.New("ride not found")
	ErrRequestNotFound = errors.New("ride request not found")
	ErrSOSNotFound     = errors.New("sos event not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrTagNotFound     = errors.New("event tag not found")

	ErrNotRideOwner        = errors.New("only the ride driver can perform this action")
	ErrNotRequestRider     = errors.New("only the requesting rider can perform this action")
	ErrNotParticipant      = errors.New("you were not part of this ride")
	ErrDriverOnly          = errors.New("only drivers can post rides")
	ErrRiderOnly           = errors.New("only riders can request rides")
	ErrAdminOnly           = errors.New("admin access required")
	ErrUnverifiedDriver    = errors.New("only verified drivers can post rides")
	ErrAccountDisabled     = errors.New("account has been disabled")
	ErrCannotModerateAdmin = errors.New("admin accounts cannot be moderated")

	ErrInvalidEmailDomain    = errors.New("email domain is not allowed")
	ErrInvalidPickupPoint    = errors.New("invalid pickup point")
	ErrInvalidDateTime       = errors.New("invalid date or time")
	ErrSeatsBelowTaken       = errors.New("seat count cannot drop below seats already taken")
	ErrInvalidRecurrence     = errors.New("invalid recurrence pattern")
	ErrRecurrenceHorizon     = errors.New("recurrence horizon is required for recurring rides")
	ErrInvalidPIN            = errors.New("invalid PIN")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrInvalidBranch         = errors.New("invalid branch")
	ErrInvalidAcademicYear   = errors.New("invalid academic year")
	ErrUrgentOutsideHorizon  = errors.New("urgent requests are only allowed close to departure")
	ErrRideNotActive         = errors.New("this ride is no longer active")
	ErrRideNotEditable       = errors.New("completed or cancelled rides cannot be changed")
	ErrRequestNotAccepted    = errors.New("this request must be accepted first")
	ErrRequestNotOngoing     = errors.New("ride must be ongoing")
	ErrRideNotCompleted      = errors.New("can only rate completed rides")
	ErrChatUnavailable       = errors.New("chat is only available after the request is accepted")
	ErrAlreadyVerified       = errors.New("already verified")
	ErrInvalidAdminAction    = errors.New("unknown admin action")
	ErrInvalidReportCategory = errors.New("unknown report category")

	ErrReportAlreadyHandled = errors.New("report has already been handled")

	ErrEmailTaken        = errors.New("email already registered")
	ErrDuplicateRequest  = errors.New("you have already requested this ride")
	ErrNoSeatsAvailable  = errors.New("no seats available")
	ErrAlreadyRated      = errors.New("you have already rated this ride")
	ErrRequestNotPending = errors.New("this request has already been handled")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionExpired     = errors.New("session is no longer valid")

	ErrInternalServer = errors.New("internal server error")
)

// NotFound reports whether err belongs to the not-found class.
func NotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRideNotFound) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrSOSNotFound) ||
		errors.Is(err, ErrReportNotFound) ||
		errors.Is(err, ErrTagNotFound)
}

func Forbidden(err error) bool {
	return errors.Is(err, ErrNotRideOwner) ||
		errors.Is(err, ErrNotRequestRider) ||
		errors.Is(err, ErrNotParticipant) ||
		errors.Is(err, ErrDriverOnly) ||
		errors.Is(err, ErrRiderOnly) ||
		errors.Is(err, ErrAdminOnly) ||
		errors.Is(err, ErrUnverifiedDriver) ||
		errors.Is(err, ErrAccountDisabled) ||
		errors.Is(err, ErrCannotModerateAdmin)
}

func InvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidEmailDomain) ||
		errors.Is(err, ErrInvalidPickupPoint) ||
		errors.Is(err, ErrInvalidDateTime) ||
		errors.Is(err, ErrSeatsBelowTaken) ||
		errors.Is(err, ErrInvalidRecurrence) ||
		errors.Is(err, ErrRecurrenceHorizon) ||
		errors.Is(err, ErrInvalidPIN) ||
		errors.Is(err, ErrInvalidRating) ||
		errors.Is(err, ErrInvalidBranch) ||
		errors.Is(err, ErrInvalidAcademicYear) ||
		errors.Is(err, ErrUrgentOutsideHorizon) ||
		errors.Is(err, ErrRideNotActive) ||
		errors.Is(err, ErrRideNotEditable) ||
		errors.Is(err, ErrRequestNotAccepted) ||
		errors.Is(err, ErrRequestNotOngoing) ||
		errors.Is(err, ErrRideNotCompleted) ||
		errors.Is(err, ErrChatUnavailable) ||
		errors.Is(err, ErrAlreadyVerified) ||
		errors.Is(err, ErrInvalidAdminAction) ||
		errors.Is(err, ErrInvalidReportCategory)
}

func Conflict(err error) bool {
	return errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrDuplicateRequest) ||
		errors.Is(err, ErrNoSeatsAvailable) ||
		errors.Is(err, ErrAlreadyRated) ||
		errors.Is(err, ErrRequestNotPending) ||
		errors.Is(err, ErrReportAlreadyHandled)
}

func Unauthenticated(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrSessionExpired)
}
