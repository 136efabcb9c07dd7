package dive_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDive(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dive Suite")
}
