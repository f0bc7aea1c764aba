// Program person decodes a JSON description of a person and prints its
// fields, one per line.
//
// Usage:
//
//	person [-f file.json]
//
// With no file, a built-in example document is used. If file is "-", the
// document is read from stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/creachadair/plainwire/ast"
	"github.com/creachadair/plainwire/decode"
)

const example = `
{
    "name": "John Doe",
    "age": 30,
    "is_student": false,
    "courses": ["Math", "Science", "History"],
    "address": {
        "street": "123 Main St",
        "city": "Anytown",
        "zip": "12345"
    }
}
`

var inputFile = flag.String("f", "", "Read the document from this file (- for stdin)")

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("person: ")

	text, err := readInput(*inputFile)
	if err != nil {
		log.Fatalf("Reading input: %v", err)
	}
	if err := run(os.Stdout, text); err != nil {
		log.Fatalf("Failed to parse JSON: %v", err)
	}
}

func readInput(path string) (string, error) {
	switch path {
	case "":
		return example, nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	default:
		data, err := os.ReadFile(path)
		return string(data), err
	}
}

// run decodes text as a Person and writes its fields to w.
func run(w io.Writer, text string) error {
	var p Person
	if err := decode.Text(text, &p); err != nil {
		return err
	}
	fmt.Fprintf(w, "Name: %s\n", p.Name)
	fmt.Fprintf(w, "Age: %d\n", p.Age)
	fmt.Fprintf(w, "Is Student: %v\n", p.IsStudent)
	fmt.Fprintf(w, "Courses: %q\n", p.Courses)
	fmt.Fprintf(w, "Address: %s, %s, %s\n", p.Address.Street, p.Address.City, p.Address.Zip)
	return nil
}

// A Person is the decoded form of a person document. Missing or mistyped
// fields keep their zero values.
type Person struct {
	Name      string
	Age       int32
	IsStudent bool
	Courses   []string
	Address   Address
}

// DecodeValue implements the decode.Decoder interface.
func (p *Person) DecodeValue(v ast.Value) error {
	p.Name = decode.String(v, "name")
	p.Age = int32(decode.Int(v, "age"))
	p.IsStudent = decode.Bool(v, "is_student")
	p.Courses = decode.Strings(v, "courses")
	return decode.Field(v, &p.Address, "address")
}

// An Address is the postal address of a Person.
type Address struct {
	Street string
	City   string
	Zip    string
}

// DecodeValue implements the decode.Decoder interface.
func (a *Address) DecodeValue(v ast.Value) error {
	a.Street = decode.String(v, "street")
	a.City = decode.String(v, "city")
	a.Zip = decode.String(v, "zip")
	return nil
}
