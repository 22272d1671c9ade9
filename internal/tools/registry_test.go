package tools_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/lookupkit/internal/tools"
	"github.com/tbckr/lookupkit/internal/validate"
)

func TestRegistry_Endpoints(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		field   string
		accepts []validate.Kind
	}{
		{"ip", "/api/ip-lookup", "ip", []validate.Kind{validate.KindIPv4, validate.KindIPv6}},
		{"asn", "/api/asn-lookup", "asn", []validate.Kind{validate.KindASN, validate.KindIPv4, validate.KindIPv6}},
		{"rdns", "/api/reverse-dns", "ip", []validate.Kind{validate.KindIPv4, validate.KindIPv6}},
		{"ipv6", "/api/ipv6-check", "domain", []validate.Kind{validate.KindHostname}},
		{"email", "/api/email-trace", "header", []validate.Kind{validate.KindRawHeader}},
		{"host", "/api/host-lookup", "domain", []validate.Kind{validate.KindHostname}},
	}
	require.Len(t, tools.All(), len(tests))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := tools.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, http.MethodPost, d.Method)
			assert.Equal(t, tt.path, d.Path)
			assert.Equal(t, tt.field, d.Field)
			assert.Equal(t, tt.accepts, d.Accepts)
			assert.NotEmpty(t, d.Short)
		})
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	d, ok := tools.Lookup(" ASN ")
	require.True(t, ok)
	assert.Equal(t, "asn", d.Name)

	_, ok = tools.Lookup("whois")
	assert.False(t, ok)
}

func TestNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"asn", "email", "host", "ip", "ipv6", "rdns"}, tools.Names())
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := tools.All()
	all[0].Name = "changed"
	_, ok := tools.Lookup("changed")
	assert.False(t, ok)
}

func TestDefinition_AcceptsString(t *testing.T) {
	d, _ := tools.Lookup("asn")
	assert.Equal(t, "asn, ipv4, ipv6", d.AcceptsString())
}

func TestDecode_KeepsRawPayloadForJSON(t *testing.T) {
	payload := json.RawMessage(`{"ip":"8.8.8.8","country":"United States","extra":{"nested":[1,2]}}`)
	d, _ := tools.Lookup("ip")
	res, err := d.Decode(payload)
	require.NoError(t, err)
	ip, ok := res.(*tools.IPResult)
	require.True(t, ok)
	assert.Equal(t, tools.Text("United States"), ip.Country)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(data))
}

func TestDecode_ShapeMismatchFallsBackToRaw(t *testing.T) {
	payload := json.RawMessage(`["unexpected"]`)
	d, _ := tools.Lookup("host")
	res, err := d.Decode(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding host result")

	raw, ok := res.(*tools.RawResult)
	require.True(t, ok)
	assert.False(t, raw.IsEmpty())
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(data))
}
