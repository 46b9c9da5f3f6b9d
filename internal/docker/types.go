package docker

// ContainerInfo represents a running container in the report
type ContainerInfo struct {
	ID     string
	Name   string
	Image  string
	State  string
	Status string
}

// ContainerList contains the running containers
type ContainerList struct {
	Containers []ContainerInfo
	Total      int
}
