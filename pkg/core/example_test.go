package core_test

import (
	"fmt"

	"github.com/redactyl/piiguard/pkg/core"
)

func ExampleNewDetector() {
	det := core.NewDetector(core.WithLabels([]string{"SSN"}, nil))
	for _, e := range det.Detect("My SSN is 123-45-6789") {
		fmt.Println(e.Label, e.Text)
	}
	// Output: SSN 123-45-6789
}

func ExampleNewAnonymizer() {
	job := core.AnonymizeConfig{
		Tables: []core.TableConfig{{
			TableName: "users",
			Fields: []core.FieldConfig{
				{FieldName: "ssn", FieldType: "ssn", Method: "mask"},
			},
		}},
		PreserveFormat: true,
		OutputFormat:   "json",
	}
	a, err := core.NewAnonymizer(job)
	if err != nil {
		fmt.Println(err)
		return
	}
	out, _ := a.AnonymizeRecord(core.Record{"ssn": "123-45-6789", "id": 7}, "users")
	fmt.Println(out["ssn"], out["id"])
	// Output: ***-**-6789 7
}

func ExampleInit() {
	core.Init(core.WithLabels([]string{"EMAIL"}, nil))
	defer core.Shutdown()

	out, _ := core.Redact("email jane@example.com", "*")
	fmt.Println(out)
	// Output: email [EMAIL:****]
}
