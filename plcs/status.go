package plcs

type ChildStatus struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

type ObjectStatus struct {
	ID       string        `yaml:"id" json:"id"`
	Type     string        `yaml:"type" json:"type"`
	Disabled bool          `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Children []ChildStatus `yaml:"children,omitempty" json:"children,omitempty"`
}

// Status lists every object with the current value of each of its bits, in
// creation order.
func (p *Program) Status() []ObjectStatus {
	ret := make([]ObjectStatus, 0, len(p.objects))
	for _, o := range p.objects {
		status := ObjectStatus{
			ID:   o.ID,
			Type: o.typeName(),
		}
		if o.remote != nil {
			status.Disabled = o.remote.disabled
		}
		for _, bit := range o.Bits() {
			c, ok := o.ChildVar(bit)
			if !ok {
				continue
			}
			status.Children = append(status.Children, ChildStatus{
				Name:  bit,
				Value: c.String(),
			})
		}
		ret = append(ret, status)
	}
	return ret
}

func (o *Object) typeName() string {
	switch o.Kind {
	case KindMath:
		return o.math.Op.String()
	case KindTimer:
		return o.Kind.String() + "/" + o.timer.Mode.String()
	case KindCounter:
		if o.counter.Down {
			return o.Kind.String() + "/CTD"
		}
		return o.Kind.String() + "/CTU"
	}
	return o.Kind.String()
}
