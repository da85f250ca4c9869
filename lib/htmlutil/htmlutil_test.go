package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, body string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestText(t *testing.T) {
	doc := parse(t, `<p class="x">
		10 hits
		<b> | </b>
		55 damages
	</p>`)

	require.Equal(t, "10 hits|55 damages", Text(doc.Find("p.x")))
	require.Equal(t, "", Text(doc.Find("p.missing")))
	require.Contains(t, GetText(doc.Find("p.x").Get(0)), "\n")
}

func TestDirectChildren(t *testing.T) {
	doc := parse(t, `<div class="c">
		<span class="key a">1</span>
		<span class="other">2</span>
		<p class="key">3</p>
		<span class="wrapper"><span class="key">nested</span></span>
		<span class="key">4</span>
	</div>`)

	var texts []string
	for _, child := range DirectChildren(doc.Find("div.c"), "span", "key") {
		texts = append(texts, Text(child))
	}
	require.Equal(t, []string{"1", "4"}, texts)
}

func TestBasename(t *testing.T) {
	testCases := []struct {
		link   string
		expect string
	}{
		{link: "/img/1.png", expect: "1.png"},
		{link: "https://example.com/tpl/img/key/df.svg?v=2", expect: "df.svg"},
		{link: "2.png", expect: "2.png"},
		{link: "", expect: ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expect, Basename(test.link), test.link)
	}
}
