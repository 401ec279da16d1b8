package constants

const (
	ErrMsgAssignmentFailed  = "Failed to create assignment"
	ErrMsgAlreadyAssigned   = "Equipment already assigned to this user"
	ErrMsgEquipmentObsolete = "Equipment is obsolete and cannot be assigned"
	ErrMsgAssignmentMissing = "Assignment not found"
	ErrMsgAlreadySignedUp   = "User is already signed up"
	ErrMsgActivityMissing   = "Activity not found"
	ErrMsgActivityFull      = "Activity is at capacity"
	ErrMsgPolicyMissing     = "Policy not found"
	ErrMsgAlreadyCompleted  = "Policy already acknowledged"
	ErrMsgUnauthorized      = "Unauthorized"
)
