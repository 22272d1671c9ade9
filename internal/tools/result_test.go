package tools_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/lookupkit/internal/tools"
)

func decode(t *testing.T, tool, payload string) tools.Result {
	t.Helper()
	d, ok := tools.Lookup(tool)
	require.True(t, ok)
	res, err := d.Decode(json.RawMessage(payload))
	require.NoError(t, err)
	return res
}

func render(t *testing.T, res tools.Result) (table, plain string) {
	t.Helper()
	var tb, pb bytes.Buffer
	require.NoError(t, res.WriteTable(&tb))
	require.NoError(t, res.WritePlain(&pb))
	return tb.String(), pb.String()
}

func TestText_Scalars(t *testing.T) {
	var v struct {
		S tools.Text `json:"s"`
		N tools.Text `json:"n"`
		F tools.Text `json:"f"`
		B tools.Text `json:"b"`
		Z tools.Text `json:"z"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"x","n":15169,"f":37.751,"b":true,"z":null}`), &v))
	assert.Equal(t, tools.Text("x"), v.S)
	assert.Equal(t, tools.Text("15169"), v.N)
	assert.Equal(t, tools.Text("37.751"), v.F)
	assert.Equal(t, tools.Text("true"), v.B)
	assert.Equal(t, tools.Text(""), v.Z)

	var bad tools.Text
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &bad))
}

func TestTextList_ArrayOrScalar(t *testing.T) {
	var v struct {
		A tools.TextList `json:"a"`
		S tools.TextList `json:"s"`
		E tools.TextList `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":["x",1],"s":"y","e":""}`), &v))
	assert.Equal(t, []string{"x", "1"}, v.A.Strings())
	assert.Equal(t, []string{"y"}, v.S.Strings())
	assert.Nil(t, v.E)
}

func TestIPResult(t *testing.T) {
	res := decode(t, "ip", `{"ip":"8.8.8.8","city":"Mountain View","country":"United States","country_code":"US",
		"latitude":37.751,"longitude":-97.822,"isp":"Google LLC","asn":15169,"region":""}`)
	assert.False(t, res.IsEmpty())
	table, plain := render(t, res)
	assert.Contains(t, table, "Mountain View")
	assert.Contains(t, table, "United States (US)")
	assert.NotContains(t, table, "Region")
	assert.Contains(t, plain, "Location: 37.751, -97.822\n")
	assert.Contains(t, plain, "ASN: 15169\n")

	assert.True(t, decode(t, "ip", `{"ip":"10.0.0.1"}`).IsEmpty())
}

func TestASNResult(t *testing.T) {
	res := decode(t, "asn", `{"asn":"AS13335","name":"CLOUDFLARENET","country":"US",
		"prefixes":["1.1.1.0/24","104.16.0.0/13"],"prefixes_v6":["2606:4700::/32"]}`)
	assert.False(t, res.IsEmpty())
	table, plain := render(t, res)
	assert.Contains(t, table, "CLOUDFLARENET")
	assert.Contains(t, table, "104.16.0.0/13")
	assert.Contains(t, table, "IPv6")
	assert.Contains(t, plain, "Name: CLOUDFLARENET\n")
	assert.Contains(t, plain, "1.1.1.0/24\n104.16.0.0/13\n2606:4700::/32\n")

	assert.True(t, decode(t, "asn", `{"asn":"AS0"}`).IsEmpty())
}

func TestReverseDNSResult(t *testing.T) {
	res := decode(t, "rdns", `{"ip":"1.1.1.1","hostnames":["one.one.one.one"],"ptr":"one.one.one.one"}`)
	rdns := res.(*tools.ReverseDNSResult)
	assert.Equal(t, []string{"one.one.one.one"}, rdns.Names())
	table, plain := render(t, res)
	assert.Contains(t, table, "one.one.one.one")
	assert.Equal(t, "one.one.one.one\n", plain)

	empty := decode(t, "rdns", `{"ip":"10.0.0.1","hostnames":[]}`)
	assert.True(t, empty.IsEmpty())
	table, plain = render(t, empty)
	assert.Empty(t, table)
	assert.Empty(t, plain)
}

func TestIPv6Result(t *testing.T) {
	res := decode(t, "ipv6", `{"domain":"example.com","ipv6_supported":true,
		"aaaa_records":["2606:2800:220:1:248:1893:25c8:1946"],"a_records":["93.184.216.34"]}`)
	assert.False(t, res.IsEmpty())
	table, plain := render(t, res)
	assert.Contains(t, table, "2606:2800:220:1:248:1893:25c8:1946")
	assert.Contains(t, plain, "IPv6 Supported: yes\n")
	assert.NotContains(t, plain, "IPv6 Reachable")

	unsupported := decode(t, "ipv6", `{"domain":"legacy.example","ipv6_supported":false}`)
	assert.False(t, unsupported.IsEmpty())
	_, plain = render(t, unsupported)
	assert.Contains(t, plain, "IPv6 Supported: no\n")

	assert.True(t, decode(t, "ipv6", `{"domain":"x.example"}`).IsEmpty())
}

func TestEmailTraceResult(t *testing.T) {
	res := decode(t, "email", `{"from":"alice@example.com","subject":"hi","spf":"pass",
		"hops":[{"from":"mail.example.com","by":"mx.example.net","ip":"192.0.2.1","delay":"2s"},
		        {"hop":2,"from":"mx.example.net","by":"inbox.example.org"}]}`)
	assert.False(t, res.IsEmpty())
	table, plain := render(t, res)
	assert.Contains(t, table, "mx.example.net")
	assert.Contains(t, table, "192.0.2.1")
	assert.Contains(t, plain, "SPF: pass\n")
	assert.Contains(t, plain, "1\tmail.example.com\tmx.example.net\t192.0.2.1\n")
	assert.Contains(t, plain, "2\tmx.example.net\tinbox.example.org\t\n")

	assert.True(t, decode(t, "email", `{"hops":[]}`).IsEmpty())
}

func TestHostResult(t *testing.T) {
	res := decode(t, "host", `{"domain":"example.com","ip_addresses":["93.184.216.34"],
		"mx":["10 mail.example.com"],"records":[{"type":"SOA","value":"ns.icann.org","ttl":3600}]}`)
	host := res.(*tools.HostResult)
	assert.Equal(t, [][]string{
		{"SOA", "ns.icann.org"},
		{"IP", "93.184.216.34"},
		{"MX", "10 mail.example.com"},
	}, host.Rows())
	table, plain := render(t, res)
	assert.Contains(t, table, "ns.icann.org")
	assert.Equal(t, "SOA ns.icann.org\nIP 93.184.216.34\nMX 10 mail.example.com\n", plain)

	assert.True(t, decode(t, "host", `{"domain":"nx.example"}`).IsEmpty())
}

func TestResults_StripANSI(t *testing.T) {
	res := decode(t, "host", `{"txt":["\u001b[31mred\u001b[0m"]}`)
	_, plain := render(t, res)
	assert.Equal(t, "TXT red\n", plain)
}

func TestRawResult(t *testing.T) {
	raw := tools.NewRawResult(json.RawMessage(`{"a":1}`))
	assert.False(t, raw.IsEmpty())
	table, plain := render(t, raw)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", plain)
	assert.Equal(t, plain, table)

	assert.True(t, tools.NewRawResult(json.RawMessage(`null`)).IsEmpty())
	assert.True(t, tools.NewRawResult(nil).IsEmpty())
}
