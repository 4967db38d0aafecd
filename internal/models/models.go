package models

import "encoding/xml"

const (
	// CoreNamespace is the 3MF core specification namespace
	CoreNamespace = "http://schemas.microsoft.com/3dmanufacturing/core/2015/02"
	// MaterialNamespace is the 3MF materials and properties extension namespace
	MaterialNamespace = "http://schemas.microsoft.com/3dmanufacturing/material/2015/02"
)

// Model represents a 3MF model structure
type Model struct {
	XMLName   xml.Name   `xml:"model"`
	Unit      string     `xml:"unit,attr"`
	Lang      string     `xml:"xml:lang,attr"`
	Xmlns     string     `xml:"xmlns,attr"`
	XmlnsM    string     `xml:"xmlns:m,attr,omitempty"`
	Metadata  []Metadata `xml:"metadata"`
	Resources Resources  `xml:"resources"`
	Build     Build      `xml:"build"`
}

type Metadata struct {
	Name     string `xml:"name,attr"`
	Preserve string `xml:"preserve,attr,omitempty"`
	Type     string `xml:"type,attr,omitempty"`
	Value    string `xml:",chardata"`
}

type Resources struct {
	BaseMaterials []BaseMaterials `xml:"basematerials"`
	ColorGroups   []ColorGroup    `xml:"m:colorgroup"`
	Objects       []Object        `xml:"object"`
}

type BaseMaterials struct {
	ID    string `xml:"id,attr"`
	Bases []Base `xml:"base"`
}

type Base struct {
	Name         string `xml:"name,attr"`
	DisplayColor string `xml:"displaycolor,attr"`
}

type ColorGroup struct {
	ID     string  `xml:"id,attr"`
	Colors []Color `xml:"m:color"`
}

type Color struct {
	Color string `xml:"color,attr"`
}

type Object struct {
	ID     string `xml:"id,attr"`
	Type   string `xml:"type,attr"`
	Name   string `xml:"name,attr,omitempty"`
	PID    string `xml:"pid,attr,omitempty"`
	PIndex string `xml:"pindex,attr,omitempty"`
	Mesh   *Mesh  `xml:"mesh"`
}

type Mesh struct {
	Vertices  Vertices  `xml:"vertices"`
	Triangles Triangles `xml:"triangles"`
}

type Vertices struct {
	Vertex []Vertex `xml:"vertex"`
}

type Vertex struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
}

type Triangles struct {
	Triangle []Triangle `xml:"triangle"`
}

type Triangle struct {
	V1  int    `xml:"v1,attr"`
	V2  int    `xml:"v2,attr"`
	V3  int    `xml:"v3,attr"`
	PID string `xml:"pid,attr,omitempty"`
	P1  string `xml:"p1,attr,omitempty"`
	P2  string `xml:"p2,attr,omitempty"`
	P3  string `xml:"p3,attr,omitempty"`
}

type Build struct {
	Items []Item `xml:"item"`
}

type Item struct {
	ObjectID   string `xml:"objectid,attr"`
	Transform  string `xml:"transform,attr,omitempty"`
	PartNumber string `xml:"partnumber,attr,omitempty"`
}
