// Package assistant generates customer-facing replies grounded in a
// tenant's stored business data.
//
// Each reply retrieves the nearest stored items for the question, renders
// them into a context block, and asks the completion service to answer as
// a customer service agent. Tenants with no stored data get a canned reply
// and no completion call is made.
package assistant
