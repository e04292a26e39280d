package junit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"
)

// XMLTestSuites is the optional <testsuites> wrapper
type XMLTestSuites struct {
	XMLName xml.Name       `xml:"testsuites"`
	Suites  []XMLTestSuite `xml:"testsuite"`
}

// XMLTestSuite represents the XML structure of a test suite
type XMLTestSuite struct {
	XMLName   xml.Name       `xml:"testsuite"`
	Name      string         `xml:"name,attr"`
	Tests     int            `xml:"tests,attr"`
	Failures  int            `xml:"failures,attr"`
	Errors    int            `xml:"errors,attr"`
	Skipped   int            `xml:"skipped,attr"`
	Time      string         `xml:"time,attr"`
	TestCases []XMLTestCase  `xml:"testcase"`
	Suites    []XMLTestSuite `xml:"testsuite"`
}

// XMLTestCase represents the XML structure of a test case
type XMLTestCase struct {
	Name      string       `xml:"name,attr"`
	ClassName string       `xml:"classname,attr"`
	Time      string       `xml:"time,attr"`
	Failures  []XMLProblem `xml:"failure"`
	Errors    []XMLProblem `xml:"error"`
	SystemOut []string     `xml:"system-out"`
}

// XMLProblem is a <failure> or <error> element
type XMLProblem struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// Status derives the case outcome: a failure wins over an error
func (tc XMLTestCase) Status() Status {
	if len(tc.Failures) > 0 {
		return StatusFail
	}
	if len(tc.Errors) > 0 {
		return StatusError
	}
	return StatusPass
}

// Output returns the first captured stdout block with ANSI escapes removed
func (tc XMLTestCase) Output() string {
	if len(tc.SystemOut) == 0 {
		return ""
	}
	return stripansi.Strip(tc.SystemOut[0])
}

// Seconds parses the suite time attribute. Missing values count as zero;
// thousands separators are tolerated.
func (s XMLTestSuite) Seconds() (float64, error) {
	value := strings.ReplaceAll(strings.TrimSpace(s.Time), ",", "")
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q on suite %s: %w", s.Time, s.Name, err)
	}
	return f, nil
}

// flatten returns the suite and every nested suite, depth first
func (s XMLTestSuite) flatten() []XMLTestSuite {
	out := []XMLTestSuite{s}
	for _, child := range s.Suites {
		out = append(out, child.flatten()...)
	}
	return out
}

// Parser handles parsing of JUnit XML result files
type Parser struct{}

// NewParser creates a new result file parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a document whose root is either <testsuite> or <testsuites>
// and returns every suite it contains
func (p *Parser) Parse(reader io.Reader) ([]XMLTestSuite, error) {
	decoder := xml.NewDecoder(reader)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("failed to decode XML: no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "testsuites":
			var suites XMLTestSuites
			if err := decoder.DecodeElement(&suites, &start); err != nil {
				return nil, fmt.Errorf("failed to decode XML: %w", err)
			}
			var out []XMLTestSuite
			for _, s := range suites.Suites {
				out = append(out, s.flatten()...)
			}
			return out, nil
		case "testsuite":
			var suite XMLTestSuite
			if err := decoder.DecodeElement(&suite, &start); err != nil {
				return nil, fmt.Errorf("failed to decode XML: %w", err)
			}
			return suite.flatten(), nil
		default:
			return nil, fmt.Errorf("failed to decode XML: unexpected root element <%s>", start.Name.Local)
		}
	}
}

// ParseFile parses a result file from disk
func (p *Parser) ParseFile(filename string) ([]XMLTestSuite, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	suites, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return suites, nil
}
