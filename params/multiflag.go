package params

import (
	"flag"
	"strings"

	"github.com/pkg/errors"
)

// multiflag is a repeatable string flag that rejects duplicated values.
type multiflag struct {
	name   string
	values []string
	seen   map[string]struct{}
}

var _ flag.Getter = (*multiflag)(nil)

func (f *multiflag) String() string {
	return strings.Join(f.values, ",")
}

func (f *multiflag) Set(s string) error {
	for _, value := range strings.Split(s, ",") {
		if value = strings.TrimSpace(value); len(value) == 0 {
			continue
		} else if err := f.add(value); err != nil {
			return err
		}
	}
	return nil
}

func (f *multiflag) Get() any { return f.values }

func (f *multiflag) add(value string) error {
	if _, ok := f.seen[value]; ok {
		return errors.Errorf("duplicated value %s of parameter %s", value, f.name)
	}
	f.seen[value] = struct{}{}
	f.values = append(f.values, value)
	return nil
}

func multiVal(flagSet *flag.FlagSet, name string, defValues []string, usage string) *[]string {
	values := &multiflag{name: name, values: []string{}, seen: map[string]struct{}{}}
	for _, defValue := range defValues {
		if err := values.add(defValue); err != nil {
			panic(err)
		}
	}
	flagSet.Var(values, name, usage)
	return &values.values
}
