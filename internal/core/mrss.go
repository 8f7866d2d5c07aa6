package core

// mrss.go serializes a batch of Items into one bulk-ingestion document.
//
// Element order inside <item> is significant to the ingestion service, so the
// struct field order below is the wire order:
//
//	action, type, userId, name, description?, tags?, categories?,
//	startDate?, endDate?, media, contentAssets

import (
	"bytes"
	"encoding/xml"

	"github.com/cockroachdb/errors"
)

const (
	xsdNamespace   = "http://www.w3.org/2001/XMLSchema"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "ingestion.xsd"

	itemAction = "add"
	itemType   = "1"
)

type mrssDocument struct {
	XMLName        xml.Name    `xml:"mrss"`
	XSD            string      `xml:"xmlns:xsd,attr"`
	XSI            string      `xml:"xmlns:xsi,attr"`
	SchemaLocation string      `xml:"xsi:noNamespaceSchemaLocation,attr"`
	Channel        mrssChannel `xml:"channel"`
}

type mrssChannel struct {
	Items []mrssItem `xml:"item"`
}

type mrssItem struct {
	Action        string            `xml:"action"`
	Type          string            `xml:"type"`
	UserID        string            `xml:"userId"`
	Name          string            `xml:"name"`
	Description   *string           `xml:"description"`
	Tags          *mrssTags         `xml:"tags"`
	Categories    *mrssCategories   `xml:"categories"`
	StartDate     *string           `xml:"startDate"`
	EndDate       *string           `xml:"endDate"`
	Media         mrssMedia         `xml:"media"`
	ContentAssets mrssContentAssets `xml:"contentAssets"`
}

type mrssTags struct {
	Tag []string `xml:"tag"`
}

type mrssCategories struct {
	Category []string `xml:"category"`
}

type mrssMedia struct {
	MediaType string `xml:"mediaType"`
}

type mrssContentAssets struct {
	Content mrssContent `xml:"content"`
}

type mrssContent struct {
	Resource urlContentResource `xml:"urlContentResource"`
}

type urlContentResource struct {
	URL string `xml:"url,attr"`
}

// urlResourceClose is what encoding/xml writes after the url attribute. It is
// rewritten to a self-closing tag. Attribute values escape '>', so the
// sequence can only appear at the end of that element.
var (
	urlResourceClose = []byte("></urlContentResource>")
	urlResourceEmpty = []byte("/>")
)

func toMRSSItem(it Item) mrssItem {
	out := mrssItem{
		Action:      itemAction,
		Type:        itemType,
		UserID:      it.UserID,
		Name:        it.Name,
		Description: it.Description,
		StartDate:   it.StartDate,
		EndDate:     it.EndDate,
		Media:       mrssMedia{MediaType: it.MediaType},
		ContentAssets: mrssContentAssets{
			Content: mrssContent{Resource: urlContentResource{URL: it.DownloadURL}},
		},
	}
	if len(it.Tags) > 0 {
		out.Tags = &mrssTags{Tag: it.Tags}
	}
	if len(it.Categories) > 0 {
		out.Categories = &mrssCategories{Category: it.Categories}
	}
	return out
}

// MarshalBatch renders items as a complete UTF-8 XML document, including the
// XML declaration. With pretty set, elements are indented with tabs.
func MarshalBatch(items []Item, pretty bool) ([]byte, error) {
	doc := mrssDocument{
		XSD:            xsdNamespace,
		XSI:            xsiNamespace,
		SchemaLocation: schemaLocation,
	}
	doc.Channel.Items = make([]mrssItem, len(items))
	for i, it := range items {
		doc.Channel.Items[i] = toMRSSItem(it)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	if pretty {
		enc.Indent("", "\t")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, "encode mrss document")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "close xml encoder")
	}
	if pretty {
		buf.WriteByte('\n')
	}

	return bytes.ReplaceAll(buf.Bytes(), urlResourceClose, urlResourceEmpty), nil
}
