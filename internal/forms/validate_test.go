package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInquiry_Minimal(t *testing.T) {
	f, err := Decode(KindInquiry, []byte(`{"product_type":"Basmati Rice","quantity":"2 MT","destination_country":"UAE"}`))
	require.NoError(t, err)
	inq, ok := f.(*Inquiry)
	require.True(t, ok)
	require.Equal(t, "Basmati Rice", inq.ProductType)
	require.Nil(t, inq.Email)

	doc := f.Document()
	require.Equal(t, "UAE", doc["destination_country"])
	require.Contains(t, doc, "email")
	require.Nil(t, doc["email"])
	require.Equal(t, "inquiry", f.Kind().Collection())
}

func TestDecodeInquiry_Full(t *testing.T) {
	body := `{"name":"Asha","email":"asha@example.com","phone":"+971 555","product_type":"Cardamom",
		"quantity":"500 bags","destination_country":"Oman","message":"7-8mm please"}`
	f, err := Decode(KindInquiry, []byte(body))
	require.NoError(t, err)
	doc := f.Document()
	assert.Equal(t, "asha@example.com", doc["email"])
	assert.Equal(t, "7-8mm please", doc["message"])
	assert.Equal(t, "+971 555", doc["phone"])
}

func TestDecodeInquiry_MissingRequired(t *testing.T) {
	cases := map[string]string{
		"product_type":        `{"quantity":"2 MT","destination_country":"UAE"}`,
		"quantity":            `{"product_type":"Cloves","destination_country":"UAE"}`,
		"destination_country": `{"product_type":"Cloves","quantity":"2 MT"}`,
	}
	for field, body := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := Decode(KindInquiry, []byte(body))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.True(t, verr.Has(field), "expected %s in %v", field, verr.Fields)
		})
	}
}

func TestDecodeInquiry_ReportsEveryViolation(t *testing.T) {
	_, err := Decode(KindInquiry, []byte(`{"email":"not-an-email"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, f := range []string{"email", "product_type", "quantity", "destination_country"} {
		assert.True(t, verr.Has(f), "missing %s", f)
	}
	for _, fe := range verr.Fields {
		if fe.Field == "email" {
			assert.Equal(t, "email", fe.Rule)
			assert.Equal(t, "value is not a valid email address", fe.Message)
		}
		if fe.Field == "quantity" {
			assert.Equal(t, "required", fe.Rule)
		}
	}
	assert.Contains(t, err.Error(), "validation failed")
}

func TestDecodeInquiry_PresentEmailMustBeValid(t *testing.T) {
	_, err := Decode(KindInquiry, []byte(`{"email":"","product_type":"Cumin","quantity":"1 MT","destination_country":"UK"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.True(t, verr.Has("email"))
	require.Len(t, verr.Fields, 1)
	require.Equal(t, "email", verr.Fields[0].Rule)
}

func TestDecodeInquiry_NullEmailIsAbsent(t *testing.T) {
	f, err := Decode(KindInquiry, []byte(`{"email":null,"name":" ","product_type":"Cumin","quantity":"1 MT","destination_country":"UK"}`))
	require.NoError(t, err)
	require.Nil(t, f.Document()["email"])
	require.Nil(t, f.Document()["name"])
}

func TestDecodeInquiry_WrongType(t *testing.T) {
	_, err := Decode(KindInquiry, []byte(`{"product_type":"Cumin","quantity":2}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.True(t, verr.Has("quantity"))
	require.True(t, verr.Has("destination_country"))
	for _, fe := range verr.Fields {
		if fe.Field == "quantity" {
			require.Equal(t, "type", fe.Rule)
			require.Equal(t, "must be of type string", fe.Message)
		}
	}
}

func TestDecodeInquiry_EveryWrongTypeReported(t *testing.T) {
	_, err := Decode(KindInquiry, []byte(`{"product_type":5,"quantity":7,"destination_country":["UAE"],"email":true,"name":null}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	rules := map[string]string{}
	for _, fe := range verr.Fields {
		rules[fe.Field] = fe.Rule
	}
	require.Equal(t, map[string]string{
		"product_type":        "type",
		"quantity":            "type",
		"destination_country": "type",
		"email":               "type",
	}, rules)
}

func TestDecode_TrailingDataIsInvalidJSON(t *testing.T) {
	for _, body := range []string{
		`{"product_type":"Cumin","quantity":"1 MT","destination_country":"UK"} garbage`,
		`{"product_type":"Cumin","quantity":"1 MT","destination_country":"UK"}{}`,
	} {
		_, err := Decode(KindInquiry, []byte(body))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 1)
		require.Equal(t, "body", verr.Fields[0].Field)
		require.Equal(t, "json", verr.Fields[0].Rule)
	}
}

func TestDecode_BodyErrors(t *testing.T) {
	cases := map[string]string{
		"empty":     ``,
		"malformed": `{"product_type":`,
		"array":     `[1,2]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(KindInquiry, []byte(body))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.True(t, verr.Has("body"), "fields: %v", verr.Fields)
		})
	}
}

func TestDecodeContact(t *testing.T) {
	f, err := Decode(KindContact, []byte(`{"name":"Ravi","email":"ravi@example.com","message":"Hello"}`))
	require.NoError(t, err)
	require.Equal(t, "contactmessage", f.Kind().Collection())
	doc := f.Document()
	require.Equal(t, "Ravi", doc["name"])
	require.Nil(t, doc["subject"])
}

func TestDecodeContact_InvalidEmail(t *testing.T) {
	for _, email := range []string{"ravi", "ravi@", "@example.com", "ravi example.com", ""} {
		t.Run(email, func(t *testing.T) {
			body := `{"name":"Ravi","email":"` + email + `","message":"Hello"}`
			_, err := Decode(KindContact, []byte(body))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.True(t, verr.Has("email"))
		})
	}
}

func TestDecodeContact_MessageTooLong(t *testing.T) {
	body := `{"name":"Ravi","email":"ravi@example.com","message":"` + strings.Repeat("a", 5001) + `"}`
	_, err := Decode(KindContact, []byte(body))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "max", verr.Fields[0].Rule)
	require.Equal(t, "ensure this value has at most 5000 characters", verr.Fields[0].Message)
}

func TestDecode_UnknownKind(t *testing.T) {
	_, err := Decode(Kind(42), []byte(`{}`))
	require.Error(t, err)
	require.Equal(t, "", Kind(42).Collection())
	require.Equal(t, "unknown", Kind(42).String())
}
