package mockmarker

type clock struct{}

type fixture struct {
	//strobl:mock
	clock *clock
	store *clock //strobl:mock
	plain clock
}

//strobl:mock // want `//strobl:mock only works on stored properties`
func (f *fixture) Clock() *clock { return f.clock }

//strobl:mock // want `//strobl:mock only works on variables`
func (f *fixture) Reset(c *clock) { f.clock = c }

//strobl:mock // want `//strobl:mock only works on variables`
func helper() {}

//strobl:mock // want `//strobl:mock only works on variables`
type other struct{}

//strobl:mock // want `//strobl:mock only works on variables`
const limit = 3

type clocks interface {
	Now() int //strobl:mock // want `//strobl:mock only works on stored properties`
	Set(int)  //strobl:mock // want `//strobl:mock only works on variables`
}

//strobl:mock
var shared = &clock{}

//strobl:mockery
func ignored() {}

func setUp() {
	//strobl:mock
	var local clock
	_ = local
}
