package validation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/model"
)

func validUser() model.CreateUserRequest {
	return model.CreateUserRequest{
		Name:     "Alice Silva",
		Email:    "a@x.com",
		Password: "Abcdef1!",
		Phone:    "11987654321",
		Address:  "Rua das Flores, 10",
	}
}

func strPtr(s string) *string { return &s }

func requireRule(t *testing.T, err error, field, rule string) {
	t.Helper()
	var vErr *Error
	require.True(t, errors.As(err, &vErr), "expected *validation.Error, got %v", err)
	assert.Equal(t, field, vErr.Field)
	assert.Equal(t, rule, vErr.Rule)
}

func TestStruct_CreateUser_Valid(t *testing.T) {
	req := validUser()
	assert.NoError(t, New().Struct(&req))
}

func TestStruct_CreateUser_TrimsBeforeValidating(t *testing.T) {
	req := validUser()
	req.Name = "   Al   "
	req.Email = "  a@x.com  "

	err := New().Struct(&req)

	requireRule(t, err, "name", "min")
	assert.Equal(t, "Al", req.Name)
	assert.Equal(t, "a@x.com", req.Email)
}

func TestStruct_CreateUser_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.CreateUserRequest)
		field  string
		rule   string
	}{
		{"missing name", func(r *model.CreateUserRequest) { r.Name = "" }, "name", "required"},
		{"bad email", func(r *model.CreateUserRequest) { r.Email = "not-an-email" }, "email", "email"},
		{"short password", func(r *model.CreateUserRequest) { r.Password = "Ab1!" }, "password", "password"},
		{"no upper", func(r *model.CreateUserRequest) { r.Password = "abcdef1!" }, "password", "password"},
		{"no lower", func(r *model.CreateUserRequest) { r.Password = "ABCDEF1!" }, "password", "password"},
		{"no digit", func(r *model.CreateUserRequest) { r.Password = "Abcdefg!" }, "password", "password"},
		{"no symbol", func(r *model.CreateUserRequest) { r.Password = "Abcdefg1" }, "password", "password"},
		{"phone too short", func(r *model.CreateUserRequest) { r.Phone = "123456789" }, "phone", "phone"},
		{"phone too long", func(r *model.CreateUserRequest) { r.Phone = "123456789012" }, "phone", "phone"},
		{"phone with letters", func(r *model.CreateUserRequest) { r.Phone = "11a87654321" }, "phone", "phone"},
		{"short address", func(r *model.CreateUserRequest) { r.Address = "Rua" }, "address", "min"},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUser()
			tt.mutate(&req)
			requireRule(t, v.Struct(&req), tt.field, tt.rule)
		})
	}
}

func TestStruct_UpdateUser_AllOptional(t *testing.T) {
	v := New()

	empty := model.UpdateUserRequest{}
	assert.NoError(t, v.Struct(&empty))

	phoneOnly := model.UpdateUserRequest{Phone: strPtr(" 1198765432 ")}
	assert.NoError(t, v.Struct(&phoneOnly))
	assert.Equal(t, "1198765432", *phoneOnly.Phone)

	weak := model.UpdateUserRequest{Password: strPtr("weak")}
	requireRule(t, v.Struct(&weak), "password", "password")
}

func TestStruct_CreateProduct_Price(t *testing.T) {
	v := New()
	base := func(price string) model.CreateProductRequest {
		return model.CreateProductRequest{
			Title:    "Guitarra",
			Price:    decimal.RequireFromString(price),
			Category: "Música",
		}
	}

	ok := base("10.00")
	assert.NoError(t, v.Struct(&ok))

	cents := base("0.01")
	assert.NoError(t, v.Struct(&cents))

	zero := base("0")
	assert.Error(t, v.Struct(&zero))

	negative := base("-5")
	requireRule(t, v.Struct(&negative), "price", "gt")

	largest := base("9999999999.99")
	assert.NoError(t, v.Struct(&largest))

	trailingZeros := base("12.500")
	assert.NoError(t, v.Struct(&trailingZeros))

	for _, price := range []string{"0.001", "0.004", "19.999", "10000000000", "99999999999.99", "1e15"} {
		req := base(price)
		requireRule(t, v.Struct(&req), "price", "price")
	}
}

func TestStruct_CreateProduct_OptionalFields(t *testing.T) {
	v := New()
	req := model.CreateProductRequest{
		Title:       "Guitarra",
		Price:       decimal.NewFromInt(100),
		Category:    "Música",
		Description: strPtr("curta"),
	}
	requireRule(t, v.Struct(&req), "description", "min")

	req.Description = nil
	req.ImageURL = strPtr("not a url")
	requireRule(t, v.Struct(&req), "image_url", "url")

	req.ImageURL = strPtr("   ")
	assert.NoError(t, v.Struct(&req))
	assert.Nil(t, req.ImageURL)
}

func TestStruct_UpdateProduct_Price(t *testing.T) {
	v := New()
	neg := decimal.NewFromInt(-1)
	req := model.UpdateProductRequest{Price: &neg}
	requireRule(t, v.Struct(&req), "price", "gt")

	subCent := decimal.RequireFromString("0.004")
	req.Price = &subCent
	requireRule(t, v.Struct(&req), "price", "price")

	huge := decimal.RequireFromString("1e15")
	req.Price = &huge
	requireRule(t, v.Struct(&req), "price", "price")

	fine := decimal.RequireFromString("149.90")
	req.Price = &fine
	assert.NoError(t, v.Struct(&req))

	req.Price = nil
	assert.NoError(t, v.Struct(&req))
}

func TestIsValidPrice(t *testing.T) {
	tests := []struct {
		price string
		want  bool
	}{
		{"0.01", true},
		{"1", true},
		{"9999999999.99", true},
		{"0", false},
		{"-0.01", false},
		{"0.005", false},
		{"10000000000.00", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPrice(decimal.RequireFromString(tt.price)), tt.price)
	}
}

func TestStruct_CreateOffer(t *testing.T) {
	v := New()
	req := model.CreateOfferRequest{ProductID: "123"}
	requireRule(t, v.Struct(&req), "product_id", "uuid")

	req.ProductID = uuid.NewString()
	assert.NoError(t, v.Struct(&req))
}

func TestParseID(t *testing.T) {
	id := uuid.New()
	got, err := ParseID("id", id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("id", "../etc/passwd")
	requireRule(t, err, "id", "uuid")
}

func TestError_Message(t *testing.T) {
	err := &Error{Field: "phone", Rule: "phone"}
	assert.Equal(t, "invalid phone: must contain 10 or 11 digits", err.Error())

	malformed := Malformed(errors.New("unexpected EOF"))
	assert.Equal(t, "invalid body: request body could not be parsed", malformed.Error())
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Abcdef1!"))
	assert.True(t, IsStrongPassword("Abcdef1 "))
	assert.False(t, IsStrongPassword("Abcde1!"))
}
