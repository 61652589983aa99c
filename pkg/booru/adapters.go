package booru

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/umputun/booruscope/pkg/domain"
)

// Kind selects the board API flavor
type Kind string

// supported board engines
const (
	KindDanbooru Kind = "danbooru"
	KindGelbooru Kind = "gelbooru"
	KindMoebooru Kind = "moebooru"
)

// ParseKind converts config value to Kind, empty means danbooru
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindDanbooru, nil
	case KindDanbooru, KindGelbooru, KindMoebooru:
		return k, nil
	default:
		return "", fmt.Errorf("unknown board kind %q, expected danbooru, gelbooru or moebooru", s)
	}
}

// DefaultURL returns the public instance for the board kind
func DefaultURL(kind Kind) string {
	switch kind {
	case KindGelbooru:
		return "https://gelbooru.com"
	case KindMoebooru:
		return "https://yande.re"
	default:
		return DefaultBaseURL
	}
}

// PostURL returns the board page of a post
func PostURL(kind Kind, baseURL string, id int64) string {
	return newAdapter(kind, Params{BaseURL: strings.TrimSuffix(baseURL, "/")}).postURL(id)
}

// adapter translates searches to a board API and its responses to domain posts
type adapter interface {
	searchURL(tags string, page, limit int) string
	decode(data []byte) ([]domain.Post, error)
	postURL(id int64) string
}

func newAdapter(kind Kind, params Params) adapter {
	switch kind {
	case KindGelbooru:
		return &gelbooru{params: params}
	case KindMoebooru:
		return &moebooru{params: params}
	default:
		return &danbooru{params: params}
	}
}

type danbooru struct {
	params Params
}

type danbooruPost struct {
	ID           int64  `json:"id"`
	TagString    string `json:"tag_string"`
	Rating       string `json:"rating"`
	FileURL      string `json:"file_url"`
	LargeFileURL string `json:"large_file_url"`
	FileExt      string `json:"file_ext"`
	Score        int    `json:"score"`
}

func (a *danbooru) searchURL(tags string, page, limit int) string {
	q := url.Values{}
	q.Set("tags", tags)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if a.params.Login != "" && a.params.APIKey != "" {
		q.Set("login", a.params.Login)
		q.Set("api_key", a.params.APIKey)
	}
	return a.params.BaseURL + "/posts.json?" + q.Encode()
}

func (a *danbooru) decode(data []byte) ([]domain.Post, error) {
	var raw []danbooruPost
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	res := make([]domain.Post, 0, len(raw))
	for _, p := range raw {
		fileURL := p.FileURL
		if fileURL == "" {
			fileURL = p.LargeFileURL
		}
		if p.ID == 0 || fileURL == "" {
			continue
		}
		res = append(res, domain.Post{
			ID:      p.ID,
			Tags:    p.TagString,
			Rating:  domain.ParseRating(p.Rating),
			FileURL: fileURL,
			FileExt: strings.ToLower(p.FileExt),
			Score:   p.Score,
			PostURL: a.postURL(p.ID),
		})
	}
	return res, nil
}

func (a *danbooru) postURL(id int64) string {
	return fmt.Sprintf("%s/posts/%d", a.params.BaseURL, id)
}

// gelbooru serves gelbooru 0.2 dapi, also used by safebooru.org
type gelbooru struct {
	params Params
}

type gelbooruPost struct {
	ID        flexInt `json:"id"`
	Tags      string  `json:"tags"`
	Rating    string  `json:"rating"`
	FileURL   string  `json:"file_url"`
	Directory string  `json:"directory"`
	Image     string  `json:"image"`
	Score     flexInt `json:"score"`
}

// gelbooruRatings are the rating names used in gelbooru searches
var gelbooruRatings = map[domain.Rating]string{
	domain.RatingGeneral:      "general",
	domain.RatingSensitive:    "sensitive",
	domain.RatingQuestionable: "questionable",
	domain.RatingExplicit:     "explicit",
}

func (a *gelbooru) searchURL(tags string, page, limit int) string {
	q := url.Values{}
	q.Set("page", "dapi")
	q.Set("s", "post")
	q.Set("q", "index")
	q.Set("json", "1")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("pid", strconv.Itoa(max(page-1, 0))) // zero-based
	if t := rewriteRatings(tags, gelbooruRatings); t != "" {
		q.Set("tags", t)
	}
	if a.params.Login != "" && a.params.APIKey != "" {
		q.Set("user_id", a.params.Login)
		q.Set("api_key", a.params.APIKey)
	}
	return a.params.BaseURL + "/index.php?" + q.Encode()
}

func (a *gelbooru) decode(data []byte) ([]domain.Post, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []domain.Post{}, nil // no results
	}

	var raw []gelbooruPost
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode search response: %w", err)
		}
	} else {
		// gelbooru.com wraps posts as {"@attributes": {...}, "post": [...]}, single post is not wrapped in array
		var wrapped struct {
			Post json.RawMessage `json:"post"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode search response: %w", err)
		}
		body := bytes.TrimSpace(wrapped.Post)
		switch {
		case len(body) == 0 || string(body) == "null":
		case body[0] == '[':
			if err := json.Unmarshal(body, &raw); err != nil {
				return nil, fmt.Errorf("decode posts: %w", err)
			}
		default:
			var single gelbooruPost
			if err := json.Unmarshal(body, &single); err != nil {
				return nil, fmt.Errorf("decode post: %w", err)
			}
			raw = append(raw, single)
		}
	}

	res := make([]domain.Post, 0, len(raw))
	for _, p := range raw {
		fileURL := p.FileURL
		if fileURL == "" && p.Directory != "" && p.Image != "" {
			fileURL = fmt.Sprintf("%s/images/%s/%s", a.params.BaseURL, p.Directory, p.Image)
		}
		if p.ID == 0 || fileURL == "" {
			continue
		}
		res = append(res, domain.Post{
			ID:      int64(p.ID),
			Tags:    strings.Join(strings.Fields(p.Tags), " "),
			Rating:  parseLegacyRating(p.Rating),
			FileURL: fileURL,
			FileExt: extFromURL(fileURL),
			Score:   int(p.Score),
			PostURL: a.postURL(int64(p.ID)),
		})
	}
	return res, nil
}

func (a *gelbooru) postURL(id int64) string {
	return fmt.Sprintf("%s/index.php?page=post&s=view&id=%d", a.params.BaseURL, id)
}

// moebooru serves yande.re and konachan style boards
type moebooru struct {
	params Params
}

type moebooruPost struct {
	ID      int64   `json:"id"`
	Tags    string  `json:"tags"`
	Rating  string  `json:"rating"`
	FileURL string  `json:"file_url"`
	FileExt string  `json:"file_ext"`
	Score   flexInt `json:"score"`
}

// moebooruRatings maps ratings to the three moebooru levels, sensitive falls into questionable
var moebooruRatings = map[domain.Rating]string{
	domain.RatingGeneral:      "safe",
	domain.RatingSensitive:    "questionable",
	domain.RatingQuestionable: "questionable",
	domain.RatingExplicit:     "explicit",
}

func (a *moebooru) searchURL(tags string, page, limit int) string {
	q := url.Values{}
	q.Set("tags", rewriteRatings(tags, moebooruRatings))
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return a.params.BaseURL + "/post.json?" + q.Encode()
}

func (a *moebooru) decode(data []byte) ([]domain.Post, error) {
	var raw []moebooruPost
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	res := make([]domain.Post, 0, len(raw))
	for _, p := range raw {
		if p.ID == 0 || p.FileURL == "" {
			continue
		}
		ext := strings.ToLower(p.FileExt)
		if ext == "" {
			ext = extFromURL(p.FileURL)
		}
		res = append(res, domain.Post{
			ID:      p.ID,
			Tags:    p.Tags,
			Rating:  parseLegacyRating(p.Rating),
			FileURL: p.FileURL,
			FileExt: ext,
			Score:   int(p.Score),
			PostURL: a.postURL(p.ID),
		})
	}
	return res, nil
}

func (a *moebooru) postURL(id int64) string {
	return fmt.Sprintf("%s/post/show/%d", a.params.BaseURL, id)
}

// ratingLadder lists ratings from the mildest, rating ranges are spans of it
var ratingLadder = []domain.Rating{
	domain.RatingGeneral, domain.RatingSensitive, domain.RatingQuestionable, domain.RatingExplicit,
}

// rewriteRatings replaces danbooru rating terms (rating:general, rating:general..sensitive)
// with terms the board understands. Ranges become negations of the excluded ratings.
func rewriteRatings(tags string, names map[domain.Rating]string) string {
	fields := strings.Fields(tags)
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		expr, ok := strings.CutPrefix(f, "rating:")
		if !ok {
			res = append(res, f)
			continue
		}
		res = append(res, ratingTerms(expr, names)...)
	}
	return strings.Join(res, " ")
}

func ratingTerms(expr string, names map[domain.Rating]string) []string {
	from, to, isRange := strings.Cut(expr, "..")
	if !isRange {
		to = from
	}
	lo, hi := ladderIndex(from), ladderIndex(to)
	if lo < 0 || hi < lo {
		return []string{"rating:" + expr}
	}

	allowed := map[string]bool{}
	for _, r := range ratingLadder[lo : hi+1] {
		allowed[names[r]] = true
	}
	if len(allowed) == 1 {
		return []string{"rating:" + names[ratingLadder[lo]]}
	}

	res := []string{}
	excluded := map[string]bool{}
	for _, r := range ratingLadder {
		n := names[r]
		if allowed[n] || excluded[n] {
			continue
		}
		excluded[n] = true
		res = append(res, "-rating:"+n)
	}
	return res
}

func ladderIndex(s string) int {
	r := domain.ParseRating(s)
	for i, lr := range ratingLadder {
		if lr == r {
			return i
		}
	}
	return -1
}

// parseLegacyRating handles boards where "s" stands for safe rather than sensitive
func parseLegacyRating(s string) domain.Rating {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "safe", "g", "general":
		return domain.RatingGeneral
	case "":
		return ""
	default:
		return domain.ParseRating(s)
	}
}

// extFromURL returns lowercase file extension of the url path
func extFromURL(u string) string {
	pu, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(pu.Path), "."))
}

// flexInt accepts numbers sent as json numbers, strings or null
type flexInt int64

// UnmarshalJSON implements json.Unmarshaler
func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	*n = flexInt(v)
	return nil
}
