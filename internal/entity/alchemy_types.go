package entity

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Ответы Alchemy не доверенные: любое поле может отсутствовать или иметь неожиданный тип.
// Все типы ниже при несовпадении типа оставляют нулевое значение вместо ошибки декодирования.

// FlexString decodes a JSON string or number as text. Any other JSON value decodes to "".
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = ""
		return nil
	}
	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*s = ""
			return nil
		}
		*s = FlexString(str)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*s = FlexString(data)
	default:
		*s = ""
	}
	return nil
}

// String returns the decoded text.
func (s FlexString) String() string {
	return string(s)
}

// AttributeList keeps only the object elements of a JSON array.
type AttributeList []map[string]any

func (l *AttributeList) UnmarshalJSON(data []byte) error {
	var items []jsoniter.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	out := make(AttributeList, 0, len(items))
	for _, item := range items {
		var attr map[string]any
		if err := json.Unmarshal(item, &attr); err != nil || attr == nil {
			continue
		}
		out = append(out, attr)
	}
	*l = out
	return nil
}

// Contract is the token contract block of an Alchemy NFT record.
type Contract struct {
	Address FlexString `json:"address"`
	Name    FlexString `json:"name"`
}

func (c *Contract) UnmarshalJSON(data []byte) error {
	type plain Contract
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*c = Contract{}
		return nil
	}
	*c = Contract(p)
	return nil
}

// Image holds the provider's cached copy of the token media.
type Image struct {
	CachedURL   FlexString `json:"cachedUrl"`
	ContentType FlexString `json:"contentType"`
	PngURL      FlexString `json:"pngUrl"`
}

func (i *Image) UnmarshalJSON(data []byte) error {
	type plain Image
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*i = Image{}
		return nil
	}
	*i = Image(p)
	return nil
}

// Metadata is the subset of the token's raw metadata document we read.
type Metadata struct {
	Image         FlexString    `json:"image"`
	FallbackImage FlexString    `json:"fallback_image"`
	Attributes    AttributeList `json:"attributes"`
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	type plain Metadata
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*m = Metadata{}
		return nil
	}
	*m = Metadata(p)
	return nil
}

// Raw wraps the untouched token metadata.
type Raw struct {
	Metadata Metadata `json:"metadata"`
}

func (r *Raw) UnmarshalJSON(data []byte) error {
	type plain Raw
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*r = Raw{}
		return nil
	}
	*r = Raw(p)
	return nil
}

// Collection is the provider's collection grouping, when known.
type Collection struct {
	Name FlexString `json:"name"`
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	type plain Collection
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*c = Collection{}
		return nil
	}
	*c = Collection(p)
	return nil
}

// OwnedNFT is one record of the getNFTsForOwner response (also the getNFTMetadata response body).
type OwnedNFT struct {
	TokenID     FlexString `json:"tokenId"`
	TokenType   FlexString `json:"tokenType"`
	Name        FlexString `json:"name"`
	Description FlexString `json:"description"`
	Contract    Contract   `json:"contract"`
	Image       Image      `json:"image"`
	Raw         Raw        `json:"raw"`
	Collection  Collection `json:"collection"`
}

func (n *OwnedNFT) UnmarshalJSON(data []byte) error {
	type plain OwnedNFT
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*n = OwnedNFT{}
		return nil
	}
	*n = OwnedNFT(p)
	return nil
}

// OwnedNFTsPage is a single page of the getNFTsForOwner response.
type OwnedNFTsPage struct {
	OwnedNfts []OwnedNFT
	PageKey   string
	// HasOwnedNfts is false when the response carried no ownedNfts array.
	HasOwnedNfts bool
}

type ownedNFTsEnvelope struct {
	OwnedNfts jsoniter.RawMessage `json:"ownedNfts"`
	PageKey   FlexString          `json:"pageKey"`
}

// DecodeOwnedNFTsPage parses a getNFTsForOwner body. Only malformed JSON is an error;
// a well-formed body of the wrong shape yields a page with HasOwnedNfts == false.
func DecodeOwnedNFTsPage(body []byte) (*OwnedNFTsPage, error) {
	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode ownedNfts page: %w", err)
	}

	var env ownedNFTsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &OwnedNFTsPage{}, nil
	}

	page := &OwnedNFTsPage{PageKey: env.PageKey.String()}
	raw := bytes.TrimSpace(env.OwnedNfts)
	if len(raw) == 0 || raw[0] != '[' {
		return page, nil
	}
	if err := json.Unmarshal(raw, &page.OwnedNfts); err != nil {
		return page, nil
	}
	page.HasOwnedNfts = true
	return page, nil
}
