package proto

import (
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
)

// Field names of the wire form of a user.
const (
	FieldID    = "id"
	FieldName  = "name"
	FieldEmail = "email"
	FieldRole  = "role"
)

// maxExactID is the largest integer a Struct number (a float64) carries
// without loss.
const maxExactID = 1 << 53

// ToStruct encodes u as a Struct.  The id is sent as a decimal string
// so the full int64 range survives the float64 Struct number type.
func ToStruct(u user.User) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldID:    structpb.NewStringValue(strconv.FormatInt(u.ID, 10)),
			FieldName:  structpb.NewStringValue(u.Name),
			FieldEmail: structpb.NewStringValue(u.Email),
			FieldRole:  structpb.NewStringValue(u.Role.String()),
		},
	}
}

// FromStruct decodes a user.  The role is parsed with user.ParseRole,
// so an absent role becomes the default and an unknown one is an error.
func FromStruct(s *structpb.Struct) (user.User, error) {
	if s == nil {
		return user.User{}, fmt.Errorf("user is required")
	}
	f := s.GetFields()

	idv, ok := f[FieldID]
	if !ok {
		return user.User{}, fmt.Errorf("field %q is required", FieldID)
	}
	id, err := decodeID(idv)
	if err != nil {
		return user.User{}, err
	}

	role, err := user.ParseRole(f[FieldRole].GetStringValue())
	if err != nil {
		return user.User{}, err
	}
	return user.User{
		ID:    id,
		Name:  f[FieldName].GetStringValue(),
		Email: f[FieldEmail].GetStringValue(),
		Role:  role,
	}, nil
}

// decodeID accepts the decimal string ToStruct writes, or a plain
// number as long as float64 holds it exactly.
func decodeID(v *structpb.Value) (int64, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		id, err := strconv.ParseInt(k.StringValue, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q must be a decimal int64, got %q", FieldID, k.StringValue)
		}
		return id, nil
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n != math.Trunc(n) || math.Abs(n) > maxExactID {
			return 0, fmt.Errorf("field %q must be an integer within +/-2^53 when sent as a number, got %v", FieldID, n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("field %q must be a string or number", FieldID)
	}
}
