package basics_test

import (
	"fmt"
	"os"

	"github.com/YuminosukeSato/primer/basics"
)

func ExampleAuthors() {
	authors := basics.DefaultAuthors()
	authors.Append("Mephistopheles")
	_ = authors.Insert(2, "Shrek")
	fmt.Println(authors)

	authors.Sort()
	fmt.Println(authors)
	// Output:
	// ["Tolkien", "Orwell", "Shrek", "Austen", "Mephistopheles"]
	// ["Austen", "Mephistopheles", "Orwell", "Shrek", "Tolkien"]
}

func ExampleToFloat() {
	_, err := basics.ToFloat(basics.StringLiteral)
	fmt.Println(err)
	// Output:
	// primer: could not convert string to float: "Number of literals:"
}

func ExampleIntroduce() {
	_ = basics.Introduce(os.Stdout, "Saruman", 1000)
	// Output:
	// Je m'appelle Saruman
	// Mon âge est 1000
}
