package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
	KindImage  Kind = "image"
)

func (k Kind) Valid() bool {
	switch k {
	case KindFolder, KindFile, KindImage:
		return true
	}
	return false
}

func (k Kind) IsFolder() bool {
	return k == KindFolder
}

// Parent references the folder a record lives in. The zero value is Root.
type Parent struct {
	id string
}

var Root = Parent{}

func ParentOf(id string) Parent {
	if id == "0" {
		return Root
	}
	return Parent{id: id}
}

func (p Parent) IsRoot() bool {
	return p.id == ""
}

func (p Parent) ID() string {
	return p.id
}

func (p Parent) String() string {
	if p.IsRoot() {
		return "0"
	}
	return p.id
}

// MarshalJSON renders Root as the number 0 and any other parent as its id.
func (p Parent) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte("0"), nil
	}
	return json.Marshal(p.id)
}

// UnmarshalJSON accepts null, 0, "0" and "" as Root.
func (p *Parent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "0", `""`, `"0"`:
		*p = Root
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("parentId must be a string or 0: %w", err)
	}
	*p = ParentOf(id)
	return nil
}

type File struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Type      Kind      `json:"type"`
	IsPublic  bool      `json:"isPublic"`
	Parent    Parent    `json:"parentId"`
	LocalPath string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
