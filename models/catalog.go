package models

// Minimal display models for catalog data owned by the external CRUD
// modules. The agenda only reads the fields it renders or notifies with.

type PatientRef struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken string `bson:"fcm_token,omitempty" json:"-"`
}

type DoctorRef struct {
	ID     string `bson:"id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Colour string `bson:"colour,omitempty" json:"colour,omitempty"` // agenda display colour
}

type AssistantRef struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}
