// internal/model/customer.go
package model

type Customer struct {
    ID     string            `json:"id"`
    Name   string            `json:"name"`
    Branch string            `json:"branch,omitempty"`
    Fields map[string]string `json:"fields,omitempty"`
}

// CustomerRow is a customer as shown on a call list, with its latest log entry.
type CustomerRow struct {
    Customer
    Called    bool          `json:"called"`
    LastEntry *CallLogEntry `json:"last_entry,omitempty"`
}
