package bars

// State is the lifecycle of one add/remove invocation for a (user, place) pair.
type State string

const (
	StateIdle     State = "idle"
	StateInFlight State = "in_flight"
	StateSuccess  State = "success"
	StateFailed   State = "failed"
)

// Operation is the kind of favourite update.
type Operation string

const (
	OpAdd    Operation = "add"
	OpRemove Operation = "remove"
)

// Result is what a workflow invocation reports to its caller.
type Result struct {
	State State `json:"state"`
	// Reason is set when the invocation short-circuited without a write:
	// ErrAlreadyFavourited, ErrAlreadyRemoved or ErrInFlight.
	Reason error `json:"-"`
}

// AddInput carries the caller's current view of the backend. PlaceExists and
// MembershipExists come from a fresh lookup made just before the call.
type AddInput struct {
	UserID           string
	Place            Place
	PlaceExists      bool
	MembershipExists bool
}

// RemoveInput carries the caller's snapshot of how many favourites the user has.
type RemoveInput struct {
	UserID         string
	PlaceID        string
	FavouriteCount int
}
