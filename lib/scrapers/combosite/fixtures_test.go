package combosite

import (
	"combo-scraper/lib/telemetry"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const landingPage = `<html><body>
	<nav>
		<a href="/combos-jin/">Jin</a>
		<a href="/combos-jin/">Jin again</a>
		<a href="/about/">About</a>
		<a href="/combos-kazuya/">Kazuya</a>
	</nav>
</body></html>`

func comboItem(id string, n int) string {
	return fmt.Sprintf(`<li class="combo-item" id="%s">
		<p class="powered">%d hits | %d damages</p>
		<div class="comboImg">
			<span class="key"><img src="/img/%d.png" alt="%d"></span>
			<span class="key">SEN</span>
		</div>
		<p class="comboTxt"> df1 &gt; %d </p>
	</li>`, id, n, n*10, n, n, n)
}

func listingPage(items ...string) string {
	return `<html><body><ul class="combos">` + strings.Join(items, "\n") + `</ul></body></html>`
}

// site serves a landing page, per character listing pages and icons,
// counting the requests it gets.
type site struct {
	t      *testing.T
	server *httptest.Server

	lock     sync.Mutex
	requests map[string]int
	// pages[character][page] is the number of items on that page, pages
	// past the end of the slice are served empty.
	pages map[string][]int
	// statuses overrides the response status of a "<character>/<page>".
	statuses map[string]int
	landing  string
}

func newSite(t *testing.T) *site {
	cleanup := telemetry.SetupForTesting(t, "test:combosite")
	t.Cleanup(cleanup)

	s := &site{
		t:        t,
		requests: map[string]int{},
		pages:    map[string][]int{},
		statuses: map[string]int{},
		landing:  landingPage,
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

func (s *site) count(path string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.requests[path]
}

func (s *site) handle(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	key := r.URL.Path
	if page := r.URL.Query().Get("page"); page != "" {
		key += "?page=" + page
	}
	s.requests[key]++
	s.lock.Unlock()

	switch {
	case r.URL.Path == "/":
		io.WriteString(w, s.landing)
	case strings.HasPrefix(r.URL.Path, "/img/"), strings.HasPrefix(r.URL.Path, "/tpl/img/char/"):
		if strings.Contains(r.URL.Path, "missing") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		io.WriteString(w, "icon:"+r.URL.Path)
	case strings.HasPrefix(r.URL.Path, "/combos-"):
		character := strings.Trim(strings.TrimPrefix(r.URL.Path, "/combos-"), "/")
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			http.Error(w, "bad page", http.StatusBadRequest)
			return
		}
		if status, ok := s.statuses[fmt.Sprintf("%s/%d", character, page)]; ok {
			w.WriteHeader(status)
			return
		}
		var items []string
		if counts := s.pages[character]; page <= len(counts) {
			for i := 0; i < counts[page-1]; i++ {
				items = append(items, comboItem(fmt.Sprintf("%s-%d-%d", character, page, i), page))
			}
		}
		io.WriteString(w, listingPage(items...))
	default:
		http.NotFound(w, r)
	}
}

func (s *site) client(outputDir string) *Client {
	c, err := NewClient(ClientOptions{
		BaseUrl:   s.server.URL,
		OutputDir: outputDir,
		Timeout:   5 * time.Second,
		PageLimit: DefaultPageLimit,
	})
	require.NoError(s.t, err)
	return c
}
