package models

// ToastKind classifies a user-visible notification.
type ToastKind string

const (
	// ToastSuccess marks a successful outcome.
	ToastSuccess ToastKind = "success"
	// ToastError marks a failed outcome.
	ToastError ToastKind = "error"
)

// ValidToastKind reports whether k is a known toast kind.
func ValidToastKind(k ToastKind) bool {
	return k == ToastSuccess || k == ToastError
}

// Toast is an ephemeral notification. The id is monotonic and time-based;
// each toast self-destructs after a fixed visible lifetime.
type Toast struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Kind    ToastKind `json:"kind"`
}
