// Package validation adds assertions about the result of a
// schema-validation call: an object carrying either a validation
// error or a validated value.
//
// The assertions are evaluators for the assertion engine and are
// installed explicitly:
//
//	engine := assertion.NewEngine()
//	if err := validation.Register(engine); err != nil {
//		return err
//	}
//
// They register these types:
//
//   - validation: the subject is a well-formed validation result
//   - validate:   the result carries no error
//   - error:      the result carries an error; the chain continues on it
//   - value:      the result carries a non-nil value; the chain continues on it
//   - errmsgs:    the error has detail messages; the chain continues on them
//   - errmsg:     the error has the detail message given as Value
//
// Every type except validation first checks the shape of the
// subject and fails with the shape error, ignoring negation, when
// the subject is not a validation result.
//
// Inside tests, Expect offers the same assertions as a fluent
// chain reported through testify:
//
//	validation.Expect(t, result).HasErrmsgs().Len(2).Contains(`"num" must be a number`)
//	validation.Expect(t, result).HasValue().Equal("a")
//	validation.Expect(t, result).Not().Validates()
package validation
