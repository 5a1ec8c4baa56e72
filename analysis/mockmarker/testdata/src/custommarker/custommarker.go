package custommarker

type clock struct{}

type fixture struct {
	clock *clock //acme:mock
}

//acme:mock // want `//acme:mock only works on stored properties`
func (f *fixture) Clock() *clock { return f.clock }

//strobl:mock
func helper() {}
