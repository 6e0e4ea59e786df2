package sanity

import (
	"context"
	"encoding/json"
)

// recentPostsQuery lists published posts that have both a slug and a cover
// image, newest first, projected down to the teaser fields.
const recentPostsQuery = `*[_type == "post" && defined(slug.current) && defined(mainImage)] | order(publishedAt desc)[0...$limit]{
  title,
  excerpt,
  "slug": slug.current,
  "image": mainImage.asset->url
}`

// postBySlugQuery fetches one post with its full body and the author
// document dereferenced.
const postBySlugQuery = `*[_type == "post" && slug.current == $slug][0]{
  title,
  excerpt,
  "slug": slug.current,
  "coverImage": mainImage.asset->url,
  body,
  publishedAt,
  author->{
    name,
    "image": image.asset->url,
    bio
  }
}`

// Post is a remote content record. Every field is optional: the dataset
// schema imposes no completeness guarantee, so nothing downstream may
// assume presence before normalization.
type Post struct {
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Slug        SlugField  `json:"slug"`
	Image       ImageField `json:"image"`
	CoverImage  ImageField `json:"coverImage"`
	PublishedAt string     `json:"publishedAt"`
	Author      *Author    `json:"author"`
	Body        []Block    `json:"body"`
}

// Author is the dereferenced author document attached to a post.
type Author struct {
	Name  string     `json:"name"`
	Image ImageField `json:"image"`
	Bio   string     `json:"bio"`
}

// SlugField tolerates both projections of a slug: the resolved string form
// ("slug": slug.current) and the raw {"current": "..."} object. Malformed
// values decode to empty rather than failing the whole response.
type SlugField string

func (s *SlugField) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*s = SlugField(v)
		}
		return nil
	}
	var obj struct {
		Current string `json:"current"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*s = SlugField(obj.Current)
	}
	return nil
}

// ImageField tolerates both projections of an image: the resolved asset URL
// string and the nested {"asset": {"url": "..."}} reference form.
type ImageField string

func (f *ImageField) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*f = ImageField(v)
		}
		return nil
	}
	var obj struct {
		Asset struct {
			URL string `json:"url"`
		} `json:"asset"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*f = ImageField(obj.Asset.URL)
	}
	return nil
}

// RecentPosts returns up to limit published posts, newest first. The limit
// is bound upstream as $limit; callers that need a hard cap should still
// re-slice, since the upstream contract is advisory.
func (c *Client) RecentPosts(ctx context.Context, limit int) ([]Post, error) {
	result, err := c.Query(ctx, recentPostsQuery, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	var posts []Post
	if len(result) > 0 {
		if err := json.Unmarshal(result, &posts); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// PostBySlug returns the single post whose slug matches, or nil when no
// document matches.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	result, err := c.Query(ctx, postBySlugQuery, map[string]any{"slug": slug})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, nil
	}
	var post Post
	if err := json.Unmarshal(result, &post); err != nil {
		return nil, err
	}
	return &post, nil
}
