package rss

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Item is one <item> of an RSS 2.0 channel. chardata fields receive CDATA
// sections and plain text alike.
type Item struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	GUID    string `xml:"guid"`
	PubDate string `xml:"pubDate"`
	Source  struct {
		URL  string `xml:"url,attr"`
		Name string `xml:",chardata"`
	} `xml:"source"`
}

type document struct {
	Channel struct {
		Items []Item `xml:"item"`
	} `xml:"channel"`
}

// Parse decodes an RSS document. Malformed input yields no items.
func Parse(body []byte) []Item {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil
	}
	items := doc.Channel.Items[:0]
	for _, it := range doc.Channel.Items {
		it.Title = strings.TrimSpace(it.Title)
		it.Link = strings.TrimSpace(it.Link)
		it.GUID = strings.TrimSpace(it.GUID)
		it.PubDate = strings.TrimSpace(it.PubDate)
		it.Source.Name = strings.TrimSpace(it.Source.Name)
		if it.Link == "" && strings.HasPrefix(it.GUID, "http") {
			it.Link = it.GUID
		}
		if it.Title == "" || it.Link == "" {
			continue
		}
		items = append(items, it)
	}
	return items
}
