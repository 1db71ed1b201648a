package configuration

// View is a read-through view of a container's named configurations. Every
// call observes the container's current contents.
type View struct {
	c *Container
}

func (v *View) Len() int                         { return v.c.Len() }
func (v *View) Slice() []*Configuration          { return v.c.Configurations() }
func (v *View) Names() []string                  { return v.c.Names() }
func (v *View) Configurations() []*Configuration { return v.c.Configurations() }

// Contains reports whether cfg is one of the container's configurations.
func (v *View) Contains(cfg *Configuration) bool {
	if cfg == nil {
		return false
	}
	found, ok := v.c.FindByName(cfg.Name())
	return ok && found == cfg
}
