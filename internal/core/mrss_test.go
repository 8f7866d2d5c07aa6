package core

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mrssOpen = `<mrss xmlns:xsd="http://www.w3.org/2001/XMLSchema" ` +
	`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ` +
	`xsi:noNamespaceSchemaLocation="ingestion.xsd">`

func strPtr(s string) *string { return &s }

func TestMarshalBatch_MinimalItem(t *testing.T) {
	items := []Item{{
		MediaType:   "1",
		Name:        "Clip A",
		DownloadURL: "http://x/a.mp4",
		UserID:      "u1",
		Tags:        []string{},
		Categories:  []string{},
	}}

	got, err := MarshalBatch(items, false)
	require.NoError(t, err)

	want := xml.Header + mrssOpen + `<channel><item>` +
		`<action>add</action><type>1</type><userId>u1</userId><name>Clip A</name>` +
		`<media><mediaType>1</mediaType></media>` +
		`<contentAssets><content><urlContentResource url="http://x/a.mp4"/></content></contentAssets>` +
		`</item></channel></mrss>`
	assert.Equal(t, want, string(got))
}

func TestMarshalBatch_FullItemElementOrder(t *testing.T) {
	items := []Item{{
		MediaType:   "2",
		Name:        "Clip B",
		Description: strPtr("desc"),
		DownloadURL: "http://x/b.mp4?a=1&b=2",
		UserID:      "u2",
		Tags:        []string{"a", "b", "c"},
		Categories:  []string{"News"},
		StartDate:   strPtr("2024-01-01"),
		EndDate:     strPtr("2024-12-31"),
	}}

	got, err := MarshalBatch(items, false)
	require.NoError(t, err)

	want := `<item><action>add</action><type>1</type><userId>u2</userId><name>Clip B</name>` +
		`<description>desc</description>` +
		`<tags><tag>a</tag><tag>b</tag><tag>c</tag></tags>` +
		`<categories><category>News</category></categories>` +
		`<startDate>2024-01-01</startDate><endDate>2024-12-31</endDate>` +
		`<media><mediaType>2</mediaType></media>` +
		`<contentAssets><content><urlContentResource url="http://x/b.mp4?a=1&amp;b=2"/></content></contentAssets>` +
		`</item>`
	assert.Contains(t, string(got), want)
}

func TestMarshalBatch_EscapesText(t *testing.T) {
	items := []Item{{
		Name:        `Tom & "Jerry" <live>`,
		DownloadURL: `http://x/"q">`,
		Tags:        []string{},
		Categories:  []string{},
	}}

	got, err := MarshalBatch(items, false)
	require.NoError(t, err)

	assert.Contains(t, string(got), `<name>Tom &amp; &#34;Jerry&#34; &lt;live&gt;</name>`)
	assert.Contains(t, string(got), `<urlContentResource url="http://x/&#34;q&#34;&gt;"/>`)
	assertWellFormed(t, got)
}

func TestMarshalBatch_PreservesItemOrder(t *testing.T) {
	var items []Item
	for _, name := range []string{"first", "second", "third"} {
		items = append(items, Item{Name: name, Tags: []string{}, Categories: []string{}})
	}

	got, err := MarshalBatch(items, false)
	require.NoError(t, err)

	s := string(got)
	first := strings.Index(s, "<name>first</name>")
	second := strings.Index(s, "<name>second</name>")
	third := strings.Index(s, "<name>third</name>")
	assert.True(t, first >= 0 && first < second && second < third)
}

func TestMarshalBatch_PrettyIsCosmetic(t *testing.T) {
	items := []Item{
		{
			MediaType: "1", Name: "A", DownloadURL: "http://x/a", UserID: "u",
			Description: strPtr("d"),
			Tags:        []string{"t1", "t2"}, Categories: []string{},
			EndDate: strPtr("2025"),
		},
		{MediaType: "1", Name: "B", DownloadURL: "http://x/b", UserID: "u", Tags: []string{}, Categories: []string{"c"}},
	}

	compact, err := MarshalBatch(items, false)
	require.NoError(t, err)
	pretty, err := MarshalBatch(items, true)
	require.NoError(t, err)

	assert.Contains(t, string(pretty), "\n\t<channel>\n\t\t<item>\n\t\t\t<action>add</action>")
	assert.Contains(t, string(pretty), "\t\t\t\t<tag>t1</tag>\n")
	assert.Contains(t, string(pretty), `<urlContentResource url="http://x/a"/>`)
	assert.NotContains(t, string(compact), "\t")

	assert.Equal(t, tokenStream(t, compact), tokenStream(t, pretty))
}

// tokenStream flattens a document into element and text tokens, dropping
// whitespace-only text so indented and compact output compare equal.
func tokenStream(t *testing.T, doc []byte) []string {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var out []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)

		switch v := tok.(type) {
		case xml.StartElement:
			s := "<" + v.Name.Local
			for _, a := range v.Attr {
				s += " " + a.Name.Local + "=" + a.Value
			}
			out = append(out, s)
		case xml.EndElement:
			out = append(out, "</"+v.Name.Local)
		case xml.CharData:
			if text := strings.TrimSpace(string(v)); text != "" {
				out = append(out, text)
			}
		}
	}
}

func assertWellFormed(t *testing.T, doc []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}
