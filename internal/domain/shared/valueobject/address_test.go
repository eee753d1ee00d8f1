package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("valid address", func(t *testing.T) {
		addr, err := NewAddress("Priya Sharma", "9876543210", "12 MG Road", "Flat 4B", "Bengaluru", "Karnataka", "560001")
		require.NoError(t, err)
		assert.Equal(t, "Priya Sharma", addr.Name())
		assert.Equal(t, "9876543210", addr.Phone())
		assert.Equal(t, "560001", addr.PostalCode())
		assert.False(t, addr.IsEmpty())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		addr, err := NewAddress("  Priya ", " 9876543210 ", " 12 MG Road ", "", " Bengaluru ", " Karnataka ", " 560001 ")
		require.NoError(t, err)
		assert.Equal(t, "Priya", addr.Name())
		assert.Equal(t, "Bengaluru", addr.City())
	})

	t.Run("line2 optional", func(t *testing.T) {
		_, err := NewAddress("Priya", "9876543210", "12 MG Road", "", "Bengaluru", "Karnataka", "560001")
		assert.NoError(t, err)
	})

	tests := []struct {
		name                                             string
		recipient, phone, line1, city, state, postalCode string
	}{
		{"missing name", "", "9876543210", "12 MG Road", "Bengaluru", "Karnataka", "560001"},
		{"missing line1", "Priya", "9876543210", "", "Bengaluru", "Karnataka", "560001"},
		{"missing city", "Priya", "9876543210", "12 MG Road", "", "Karnataka", "560001"},
		{"missing state", "Priya", "9876543210", "12 MG Road", "Bengaluru", "", "560001"},
		{"short phone", "Priya", "98765", "12 MG Road", "Bengaluru", "Karnataka", "560001"},
		{"landline prefix", "Priya", "1876543210", "12 MG Road", "Bengaluru", "Karnataka", "560001"},
		{"phone with letters", "Priya", "98765x3210", "12 MG Road", "Bengaluru", "Karnataka", "560001"},
		{"short pincode", "Priya", "9876543210", "12 MG Road", "Bengaluru", "Karnataka", "5600"},
		{"alpha pincode", "Priya", "9876543210", "12 MG Road", "Bengaluru", "Karnataka", "56000a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAddress(tt.recipient, tt.phone, tt.line1, "", tt.city, tt.state, tt.postalCode)
			assert.Error(t, err)
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr, err := NewAddress("Priya", "9876543210", "12 MG Road", "Flat 4B", "Bengaluru", "Karnataka", "560001")
	require.NoError(t, err)

	data, err := json.Marshal(addr)
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, addr.Equals(decoded))
}

func TestAddressUnmarshalRejectsInvalid(t *testing.T) {
	var decoded Address
	err := json.Unmarshal([]byte(`{"name":"Priya","phone":"123","line1":"x","city":"y","state":"z","postalCode":"560001"}`), &decoded)
	assert.Error(t, err)
}

func TestAddressScan(t *testing.T) {
	addr, err := NewAddress("Priya", "9876543210", "12 MG Road", "", "Bengaluru", "Karnataka", "560001")
	require.NoError(t, err)

	value, err := addr.Value()
	require.NoError(t, err)

	var scanned Address
	require.NoError(t, scanned.Scan(value))
	assert.True(t, addr.Equals(scanned))

	var empty Address
	require.NoError(t, empty.Scan(nil))
	assert.True(t, empty.IsEmpty())
}

func TestAddressString(t *testing.T) {
	addr, err := NewAddress("Priya", "9876543210", "12 MG Road", "", "Bengaluru", "Karnataka", "560001")
	require.NoError(t, err)
	assert.Equal(t, "Priya, 12 MG Road, Bengaluru, Karnataka, 560001", addr.String())
	assert.Equal(t, "", EmptyAddress().String())
}
