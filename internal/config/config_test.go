package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterFlagSet(t *testing.T) {
	as := assert.New(t)
	f := filterFlag{}
	as.NoError(f.Set("Department=Sales"))
	as.NoError(f.Set(" Status =Success"))
	as.NoError(f.Set("Note=a=b"))
	as.Equal("Sales", f["Department"])
	as.Equal("Success", f["Status"])
	as.Equal("a=b", f["Note"])

	as.Error(f.Set("no-separator"))
	as.Error(f.Set("=value"))
}

func TestFilterFlagString(t *testing.T) {
	as := assert.New(t)
	f := filterFlag{"B": "2", "A": "1"}
	as.Equal("A=1,B=2", f.String())
	as.Equal("", filterFlag{}.String())
}

func TestValidPageSize(t *testing.T) {
	as := assert.New(t)
	for _, s := range PageSizes {
		as.True(validPageSize(s))
	}
	as.False(validPageSize(0))
	as.False(validPageSize(26))
}
