package catalog

import "strings"

// Image size buckets
const (
	SizeW185     = "w185"
	SizeW200     = "w200"
	SizeW500     = "w500"
	SizeW1280    = "w1280"
	SizeOriginal = "original"
)

// ImageURL joins base, size and path as <base>/<size>/<path>.
// ok is false when path is empty; the caller renders a placeholder.
func ImageURL(base, path, size string) (string, bool) {
	if path == "" {
		return "", false
	}
	if size == "" {
		size = SizeW500
	}
	return strings.TrimRight(base, "/") + "/" + size + "/" + strings.TrimLeft(path, "/"), true
}

// ImageURL builds an image URL against the client's image base.
func (c *Client) ImageURL(path, size string) (string, bool) {
	return ImageURL(c.imageBaseURL, path, size)
}

func (c *Client) PosterURL(path string) (string, bool) {
	return c.ImageURL(path, SizeW500)
}

func (c *Client) BackdropURL(path string) (string, bool) {
	return c.ImageURL(path, SizeW1280)
}

func (c *Client) ProfileURL(path string) (string, bool) {
	return c.ImageURL(path, SizeW500)
}

func (c *Client) LogoURL(path string) (string, bool) {
	return c.ImageURL(path, SizeW185)
}
