package combosite

import (
	"combo-scraper/internal/combos"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type recordingFetcher struct {
	sources []string
}

func (r *recordingFetcher) EnsureDownloaded(_ context.Context, src string) {
	r.sources = append(r.sources, src)
}

func parseItem(t *testing.T, body string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<ul>" + body + "</ul>"))
	require.NoError(t, err)
	item := doc.Find(itemSelector).First()
	require.Equal(t, 1, item.Length())
	return item
}

func strptr(s string) *string {
	return &s
}

func TestParseStats(t *testing.T) {
	testCases := []struct {
		stats  string
		hits   string
		damage string
	}{
		{stats: "10 hits | 55 damages", hits: "10 hits", damage: "55 damages"},
		{stats: "10 hits", hits: "10 hits"},
		{stats: "55 damages", damage: "55 damages"},
		{stats: "8 hits | wall | 60 damages", hits: "8 hits", damage: "60 damages"},
		{stats: "whatever | else"},
		{stats: ""},
	}

	for _, test := range testCases {
		hits, damage := ParseStats(test.stats)
		require.Equal(t, test.hits, hits, test.stats)
		require.Equal(t, test.damage, damage, test.stats)
	}
}

func TestExtract(t *testing.T) {
	testCases := []struct {
		description string
		body        string
		want        combos.ComboRecord
		icons       []string
	}{
		{
			description: "full item",
			body: `<li class="combo-item" id="c1">
				<div class="powered">10 hits | 55 damages</div>
				<div class="comboImg">
					<span class="key"><img src="/img/1.png" alt="1"></span>
					<span class="key"> SEN </span>
				</div>
				<div class="comboTxt">
					df1 &gt; SEN
				</div>
			</li>`,
			want: combos.ComboRecord{
				ID:     strptr("c1"),
				Hits:   "10 hits",
				Damage: "55 damages",
				Text:   "df1 > SEN",
				Moves: []combos.MoveStep{
					combos.ImageStep("1", "1.png"),
					combos.TextStep("SEN"),
				},
			},
			icons: []string{"/img/1.png"},
		},
		{
			description: "missing stats, text and sequence",
			body:        `<li class="combo-item"><p>nothing here</p></li>`,
			want: combos.ComboRecord{
				Moves: []combos.MoveStep{},
			},
		},
		{
			description: "only direct span.key children are steps, in document order",
			body: `<li class="combo-item" id="c2">
				<div class="comboImg">
					<span class="key"><img src="https://cdn.example.com/key/df.svg?v=3" alt="df"></span>
					<span class="arrow">&gt;</span>
					<div class="key">not a span</div>
					<span class="group"><span class="key">nested</span></span>
					<span class="key heat"><b>H</b>eat</span>
					<span class="key"><em><img src="/img/2.png" alt="2"></em></span>
				</div>
			</li>`,
			want: combos.ComboRecord{
				ID: strptr("c2"),
				Moves: []combos.MoveStep{
					combos.ImageStep("df", "df.svg"),
					combos.TextStep("Heat"),
					combos.ImageStep("2", "2.png"),
				},
			},
			icons: []string{"https://cdn.example.com/key/df.svg?v=3", "/img/2.png"},
		},
		{
			description: "stats with a single marker",
			body:        `<li class="combo-item"><span class="powered">12 hits</span></li>`,
			want: combos.ComboRecord{
				Hits:  "12 hits",
				Moves: []combos.MoveStep{},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			icons := &recordingFetcher{}
			got := Extract(context.Background(), parseItem(t, testCase.body), icons)
			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
			}
			require.Equal(t, testCase.icons, icons.sources)
		})
	}
}
