package http

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/fwojciec/terreno"
	"github.com/google/uuid"
)

// DefaultContactBaseURL is the prefix of the contact-phones endpoint.
const DefaultContactBaseURL = "https://www.idealista.pt/pt"

// Ensure ContactService implements terreno.ContactService at compile time.
var _ terreno.ContactService = (*ContactService)(nil)

// ContactService reads seller phone numbers from the site's contact
// endpoint, fetched through a terreno.Fetcher.
type ContactService struct {
	fetcher terreno.Fetcher
	baseURL string
	opts    terreno.FetchOptions
}

// NewContactService creates a ContactService. baseURL is the site prefix
// the "/ajax/ads/{reference}/contact-phones" path is appended to.
func NewContactService(fetcher terreno.Fetcher, baseURL string, opts terreno.FetchOptions) *ContactService {
	return &ContactService{
		fetcher: fetcher,
		baseURL: baseURL,
		opts:    opts,
	}
}

type contactPhones struct {
	Phone1 *phone `json:"phone1"`
	Phone2 *phone `json:"phone2"`
}

type phone struct {
	Number string `json:"number"`
}

// FindContacts fetches the phone numbers published for reference.
// Returns ECONTACT on any failure.
func (s *ContactService) FindContacts(ctx context.Context, reference string) (*terreno.Contacts, error) {
	u, err := s.ContactURL(reference)
	if err != nil {
		return nil, err
	}

	resp, err := s.fetcher.Fetch(ctx, u, s.opts)
	if err != nil {
		return nil, terreno.Errorf(terreno.ECONTACT, "fetch contacts for %s: %v", reference, err)
	}
	if !resp.OK() {
		return nil, terreno.Errorf(terreno.ECONTACT, "HTTP %d fetching contacts for %s", resp.StatusCode, reference)
	}

	var phones contactPhones
	if err := json.Unmarshal([]byte(resp.Body), &phones); err != nil {
		return nil, terreno.Errorf(terreno.ECONTACT, "decode contacts for %s: %v", reference, err)
	}

	contacts := &terreno.Contacts{}
	if phones.Phone1 != nil {
		contacts.Phone1 = strings.TrimSpace(phones.Phone1.Number)
	}
	if phones.Phone2 != nil {
		contacts.Phone2 = strings.TrimSpace(phones.Phone2.Number)
	}
	return contacts, nil
}

// ContactURL returns the contact endpoint for reference with a fresh
// cache-busting query parameter. The path is percent-encoded.
func (s *ContactService) ContactURL(reference string) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", terreno.Errorf(terreno.ECONTACT, "invalid contact base URL: %v", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ajax/ads/" + reference + "/contact-phones"
	u.RawPath = ""
	u.RawQuery = url.Values{"dummy": {uuid.NewString()}}.Encode()
	return u.String(), nil
}
