// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package audio

import (
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"
	"github.com/ua-parser/uap-go/uaparser"
)

type Browser struct {
	Family  string
	Version string
}

type compiledRule struct {
	family     string
	constraint version.Constraints
}

// Classifier decides whether a user agent belongs to a browser that suspends audio output
// until a user gesture
type Classifier struct {
	parser *uaparser.Parser
	rules  []compiledRule
}

func NewClassifier(rules []BrowserRule) (*Classifier, error) {
	c := &Classifier{
		parser: uaparser.NewFromSaved(),
	}
	for _, r := range rules {
		cr := compiledRule{family: strings.ToLower(r.Family)}
		if r.Versions != "" {
			constraint, err := version.NewConstraint(r.Versions)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid version constraint for %s", r.Family)
			}
			cr.constraint = constraint
		}
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

func (c *Classifier) Parse(userAgent string) Browser {
	client := c.parser.Parse(userAgent)
	b := Browser{Family: client.UserAgent.Family}
	if client.UserAgent.Major != "" {
		parts := []string{client.UserAgent.Major}
		if client.UserAgent.Minor != "" {
			parts = append(parts, client.UserAgent.Minor)
			if client.UserAgent.Patch != "" {
				parts = append(parts, client.UserAgent.Patch)
			}
		}
		b.Version = strings.Join(parts, ".")
	}
	return b
}

func (c *Classifier) IsAffected(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	b := c.Parse(userAgent)
	family := strings.ToLower(b.Family)
	for _, r := range c.rules {
		if r.family != family {
			continue
		}
		if r.constraint == nil {
			return true
		}
		v, err := version.NewVersion(b.Version)
		if err != nil {
			continue
		}
		if r.constraint.Check(v) {
			return true
		}
	}
	return false
}
