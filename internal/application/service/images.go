package service

// ImageURLBuilder maps a stored image URL to the URL rendered on the page.
type ImageURLBuilder interface {
	Thumbnail(src string) string
}
