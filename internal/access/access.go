// Package access decides which callers may perform which operation on which
// resource. The decision table is data, consulted by a single gate.
package access

import (
	"sort"

	"github.com/Domenick1991/airport/internal/domain"
)

type Resource string

const (
	Airports      Resource = "airports"
	Routes        Resource = "routes"
	AirplaneTypes Resource = "airplane_types"
	Airlines      Resource = "airlines"
	Airplanes     Resource = "airplanes"
	Crews         Resource = "crews"
	TicketClasses Resource = "ticket_class"
	Flights       Resource = "flights"
	Orders        Resource = "orders"
)

type Operation string

const (
	List        Operation = "list"
	Retrieve    Operation = "retrieve"
	Create      Operation = "create"
	Update      Operation = "update"
	Delete      Operation = "delete"
	UploadImage Operation = "upload_image"
)

type Policy int

const (
	Deny Policy = iota
	// Authenticated allows any resolved identity.
	Authenticated
	// AdminOnly requires the admin flag.
	AdminOnly
	// OwnerScoped allows any identity; data is restricted to what it owns.
	OwnerScoped
)

func (p Policy) String() string {
	switch p {
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin"
	case OwnerScoped:
		return "owner"
	default:
		return "deny"
	}
}

// Identity is the caller as resolved from the request credentials.
type Identity struct {
	UserID  int64
	IsAdmin bool
}

// Owns reports whether the identity may see a resource owned by ownerID.
func (id Identity) Owns(ownerID int64) bool {
	return id.IsAdmin || id.UserID == ownerID
}

type Table map[Resource]map[Operation]Policy

func readOnlyOrAdmin(ops ...Operation) map[Operation]Policy {
	m := map[Operation]Policy{List: Authenticated}
	for _, op := range ops {
		switch op {
		case Retrieve:
			m[op] = Authenticated
		default:
			m[op] = AdminOnly
		}
	}
	return m
}

// DefaultTable is the capability table of the public API.
func DefaultTable() Table {
	fullCRUD := []Operation{Retrieve, Create, Update, Delete}
	return Table{
		Airports:      readOnlyOrAdmin(Create),
		Routes:        readOnlyOrAdmin(Create),
		Crews:         readOnlyOrAdmin(Create),
		TicketClasses: readOnlyOrAdmin(Create),
		AirplaneTypes: readOnlyOrAdmin(fullCRUD...),
		Airlines:      readOnlyOrAdmin(append(fullCRUD, UploadImage)...),
		Airplanes:     readOnlyOrAdmin(fullCRUD...),
		Flights:       readOnlyOrAdmin(fullCRUD...),
		Orders: {
			List:     OwnerScoped,
			Retrieve: OwnerScoped,
			Create:   OwnerScoped,
		},
	}
}

func (t Table) Policy(r Resource, op Operation) Policy {
	return t[r][op]
}

// Check returns ErrUnauthorized without an identity and ErrForbidden when
// the identity lacks the rights the policy demands.
func (t Table) Check(id *Identity, r Resource, op Operation) error {
	if id == nil {
		return domain.ErrUnauthorized
	}
	switch t.Policy(r, op) {
	case Authenticated, OwnerScoped:
		return nil
	case AdminOnly:
		if id.IsAdmin {
			return nil
		}
	}
	return domain.ErrForbidden
}

// Operations lists the operations a resource exposes, in a stable order.
func (t Table) Operations(r Resource) []Operation {
	ops := make([]Operation, 0, len(t[r]))
	for op, p := range t[r] {
		if p != Deny {
			ops = append(ops, op)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

func (t Table) Allows(r Resource, op Operation) bool {
	return t.Policy(r, op) != Deny
}
