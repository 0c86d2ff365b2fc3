// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extraction

// ContentType selects the extraction instruction and the fallback record
// shape. The set is closed and fixed at process start.
type ContentType string

const (
	ContentTypeProducts ContentType = "products"
	ContentTypeServices ContentType = "services"
	ContentTypeContact  ContentType = "contact"
	ContentTypeAbout    ContentType = "about"
	ContentTypeFAQ      ContentType = "faq"
	ContentTypePolicies ContentType = "policies"
	ContentTypeGeneral  ContentType = "general"
)

// ContentTypes returns all supported content types in display order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeProducts,
		ContentTypeServices,
		ContentTypeContact,
		ContentTypeAbout,
		ContentTypeFAQ,
		ContentTypePolicies,
		ContentTypeGeneral,
	}
}

// Valid reports whether ct is one of the supported content types.
func (ct ContentType) Valid() bool {
	switch ct {
	case ContentTypeProducts, ContentTypeServices, ContentTypeContact,
		ContentTypeAbout, ContentTypeFAQ, ContentTypePolicies, ContentTypeGeneral:
		return true
	}
	return false
}

// Label returns a human-readable description of the content type.
func (ct ContentType) Label() string {
	switch ct {
	case ContentTypeProducts:
		return "Products (e-commerce items)"
	case ContentTypeServices:
		return "Services (service offerings)"
	case ContentTypeContact:
		return "Contact Information"
	case ContentTypeAbout:
		return "About/Company Info"
	case ContentTypeFAQ:
		return "FAQs"
	case ContentTypePolicies:
		return "Policies (Terms, Privacy)"
	default:
		return "General Content"
	}
}

// RequiredFields returns the field names the fallback synthesizer must
// populate for this content type.
func (ct ContentType) RequiredFields() []string {
	switch ct {
	case ContentTypeProducts:
		return []string{"name", "description", "price", "imageUrl", "availability", "category", "sku"}
	case ContentTypeServices:
		return []string{"name", "description", "price", "duration", "category", "features"}
	case ContentTypeContact:
		return []string{"email", "phone", "address", "hours", "socialMedia", "website", "contactPerson"}
	case ContentTypeAbout:
		return []string{"companyName", "history", "mission", "vision", "values", "team", "achievements", "location"}
	case ContentTypeFAQ:
		return []string{"question", "answer", "category", "tags"}
	case ContentTypePolicies:
		return []string{"title", "content", "lastUpdated", "version", "category"}
	default:
		return []string{"content"}
	}
}

const systemInstruction = `You are an expert data extraction specialist. Extract structured information
from the provided content and format it as clean JSON. Be thorough, precise, and maintain
original language if content is in a foreign language. Always return valid JSON.`

// instruction returns the content-type-specific extraction instruction.
// Unknown types fall back to the general instruction.
func (ct ContentType) instruction() string {
	switch ct {
	case ContentTypeProducts:
		return `Extract product information. For each product include:
- name: Product name (required)
- description: Product description (required)
- price: Price with currency (required)
- imageUrl: Image URL if available
- availability: Stock status
- category: Product category
- sku: Product SKU/ID if available

Format as JSON array of product objects. Extract ALL products found.
If information is missing, use empty string.

Content to analyze:
`
	case ContentTypeServices:
		return `Extract service information. For each service include:
- name: Service name (required)
- description: Service description (required)
- price: Service price/cost if available
- duration: Service duration if mentioned
- category: Service category
- features: List of service features/benefits

Format as JSON array of service objects. Extract ALL services found.
If information is missing, use empty string or empty array.

Content to analyze:
`
	case ContentTypeContact:
		return `Extract contact information including:
- email: All email addresses found
- phone: All phone numbers found
- address: Complete physical addresses
- hours: Business hours
- socialMedia: Social media links/handles
- website: Website URLs
- contactPerson: Contact person names if available

Format as JSON object with these fields.
Use arrays for multiple entries, empty string/array if not found.

Content to analyze:
`
	case ContentTypeAbout:
		return `Extract company/organization information:
- companyName: Organization name
- history: Company history/founding info
- mission: Mission statement
- vision: Vision statement
- values: Company values/principles
- team: Team/leadership information
- achievements: Awards/achievements
- location: Company locations

Format as JSON object. Include detailed information for each field.
Use empty string if information not found.

Content to analyze:
`
	case ContentTypeFAQ:
		return `Extract FAQ information. For each FAQ include:
- question: The question text (required)
- answer: Complete answer text (required)
- category: Question category if available
- tags: Relevant tags if available

Format as JSON array of FAQ objects. Extract ALL FAQs found.
If information is missing, use empty string or empty array.

Content to analyze:
`
	case ContentTypePolicies:
		return `Extract policy documents. For each policy include:
- title: Policy title (e.g., "Privacy Policy", "Terms of Service")
- content: Full policy content
- lastUpdated: Last update date if available
- version: Policy version if available
- category: Policy category

Format as JSON array of policy objects. Extract ALL policies found.
If information is missing, use empty string.

Content to analyze:
`
	default:
		return `Extract general structured information from the content.
Identify and extract key information in a logical JSON structure.
Use appropriate field names based on the content type discovered.

Format as JSON object or array depending on content structure.

Content to analyze:
`
	}
}

// fallback synthesizes a schema-shaped value carrying a preview of the raw
// response. The list-shaped types produce a single-element list; the
// object-shaped types produce a single mapping. Every required field is
// present so downstream consumers always see a structurally valid value.
func (ct ContentType) fallback(preview string) any {
	switch ct {
	case ContentTypeProducts:
		return []any{map[string]any{
			"name":         "Extracted Product",
			"description":  preview,
			"price":        "",
			"imageUrl":     "",
			"availability": "",
			"category":     "",
			"sku":          "",
		}}
	case ContentTypeServices:
		return []any{map[string]any{
			"name":        "Extracted Service",
			"description": preview,
			"price":       "",
			"duration":    "",
			"category":    "",
			"features":    []any{},
		}}
	case ContentTypeContact:
		return map[string]any{
			"email":         "",
			"phone":         "",
			"address":       "",
			"hours":         "",
			"socialMedia":   "",
			"website":       "",
			"contactPerson": "",
			"info":          preview,
		}
	case ContentTypeAbout:
		return map[string]any{
			"companyName": "",
			"description": preview,
		}
	case ContentTypeFAQ:
		return []any{map[string]any{
			"question": "Extracted FAQ",
			"answer":   preview,
			"category": "",
			"tags":     []any{},
		}}
	case ContentTypePolicies:
		return []any{map[string]any{
			"title":       "Extracted Policy",
			"content":     preview,
			"lastUpdated": "",
			"version":     "",
			"category":    "",
		}}
	default:
		return map[string]any{"content": preview}
	}
}
