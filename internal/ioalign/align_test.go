package ioalign

import (
	"testing"

	"github.com/retroevo/capsid/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestMafftArgs(t *testing.T) {
	tests := []struct {
		msg       string
		algorithm string
		want      []string
	}{
		{
			"linsi preset",
			"linsi",
			[]string{"--thread", "-1", "--localpair", "--maxiterate", "1000"},
		},
		{
			"einsi preset",
			"einsi",
			[]string{"--thread", "-1", "--genafpair", "--maxiterate", "1000"},
		},
		{
			"ginsi preset",
			"ginsi",
			[]string{"--thread", "-1", "--globalpair", "--maxiterate", "1000"},
		},
		{
			"fast preset",
			"fast",
			[]string{"--thread", "-1", "--retree", "2"},
		},
		{
			"auto fallback",
			"auto",
			[]string{"--thread", "-1", "--auto"},
		},
	}

	for _, v := range tests {
		cfg := config.New().Align
		cfg.Algorithm = v.algorithm
		assert.Equal(t, v.want, mafftArgs(cfg), v.msg)
	}
}
