package donations

import (
	"time"

	"github.com/google/uuid"
)

// FilterKind selects which single dimension a listing query honors.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterByID
	FilterByOwner
	FilterBySearchText
	FilterByExpiry
	FilterBySort
)

// SortDirection orders quantity-sorted listings.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Filter is a tagged union resolved to a concrete query at the repository
// boundary. Exactly one dimension is honored per call; PublicOnly additionally
// excludes Delivered records regardless of the chosen dimension.
type Filter struct {
	Kind       FilterKind
	ID         uuid.UUID
	OwnerEmail string
	SearchText string
	ExpiredAt  time.Time
	Sort       SortDirection
	PublicOnly bool
}

// ResolveFilter picks the highest-priority dimension present among the
// optional listing parameters: id, then owner email, then free-text search,
// then exact expiry match, then quantity sort, falling back to an unfiltered
// listing.
func ResolveFilter(id *uuid.UUID, ownerEmail, searchText string, expiredAt *time.Time, sort string) Filter {
	switch {
	case id != nil:
		return Filter{Kind: FilterByID, ID: *id}
	case ownerEmail != "":
		return Filter{Kind: FilterByOwner, OwnerEmail: ownerEmail}
	case searchText != "":
		return Filter{Kind: FilterBySearchText, SearchText: searchText}
	case expiredAt != nil:
		return Filter{Kind: FilterByExpiry, ExpiredAt: *expiredAt}
	case sort == string(SortAscending) || sort == string(SortDescending):
		return Filter{Kind: FilterBySort, Sort: SortDirection(sort)}
	default:
		return Filter{Kind: FilterNone}
	}
}
