package model

// ResourceKind tags the entity types that carry an owner.
type ResourceKind string

const (
	KindPost     ResourceKind = "post"
	KindComment  ResourceKind = "comment"
	KindTodoline ResourceKind = "todoline"
)

// OwnedResource is implemented by entities whose creator is recorded.
// OwnerID is nil when no owner was recorded (legacy or system rows).
type OwnedResource interface {
	ResourceKind() ResourceKind
	OwnerID() *uint
}

func ownerOf(userID *uint) *uint {
	if userID == nil || *userID == 0 {
		return nil
	}
	id := *userID
	return &id
}
