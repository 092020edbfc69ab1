package providers

import (
	"context"
	"net"
	"strings"

	cidrman "github.com/EvilSuperstars/go-cidrman"
	"github.com/asergeyev/nradix"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"

	"github.com/9seconds/geoenrich/geolib"
)

// DefaultSkipNetworks are networks which never have a geolocation
// record: private, loopback, link-local and multicast ones.
var DefaultSkipNetworks = []string{
	"0.0.0.0/8",
	"10.0.0.0/8",
	"100.64.0.0/10",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"224.0.0.0/4",
	"::1/128",
	"fc00::/7",
	"fe80::/10",
}

// NetworkFilter answers "not found" for addresses from configured
// networks without asking underlying resolver.
type NetworkFilter struct {
	resolver geolib.Resolver
	v4Tree   *nradix.Tree
	v6Tree   *nradix.Tree
}

func (n *NetworkFilter) Lookup(ctx context.Context, ip string) (*geolib.City, bool, error) {
	if n.Skipped(ip) {
		log.WithFields(log.Fields{
			"ip": ip,
		}).Debug("Address is skipped.")

		return nil, false, nil
	}

	return n.resolver.Lookup(ctx, ip)
}

// Skipped tells if address belongs to one of skipped networks.
func (n *NetworkFilter) Skipped(ip string) bool {
	addr := net.ParseIP(ip)
	if addr == nil {
		return false
	}

	var (
		value interface{}
		err   error
	)

	if v4Addr := addr.To4(); v4Addr != nil {
		value, err = n.v4Tree.FindCIDR(v4Addr.String() + "/32")
	} else {
		value, err = n.v6Tree.FindCIDR(addr.String() + "/128")
	}

	return err == nil && value != nil
}

// NewNetworkFilter wraps resolver. Networks are given either as CIDRs
// (10.0.0.0/8) or as inclusive ranges (10.0.0.1-10.0.0.20).
func NewNetworkFilter(resolver geolib.Resolver, networks []string) (*NetworkFilter, error) {
	v4CIDRs := make([]string, 0, len(networks))
	v6CIDRs := make([]string, 0, len(networks))

	for _, v := range networks {
		subnets, err := networkToCIDRs(strings.TrimSpace(v))
		if err != nil {
			return nil, errors.Annotatef(err, "incorrect network %s", v)
		}

		for _, subnet := range subnets {
			if strings.Contains(subnet, ":") {
				v6CIDRs = append(v6CIDRs, subnet)
			} else {
				v4CIDRs = append(v4CIDRs, subnet)
			}
		}
	}

	if len(v4CIDRs) > 0 {
		merged, err := cidrman.MergeCIDRs(v4CIDRs)
		if err != nil {
			return nil, errors.Annotate(err, "cannot merge networks")
		}

		v4CIDRs = merged
	}

	filter := &NetworkFilter{
		resolver: resolver,
		v4Tree:   nradix.NewTree(0),
		v6Tree:   nradix.NewTree(0),
	}

	if err := addCIDRs(filter.v4Tree, v4CIDRs); err != nil {
		return nil, err
	}

	if err := addCIDRs(filter.v6Tree, v6CIDRs); err != nil {
		return nil, err
	}

	return filter, nil
}

func addCIDRs(tree *nradix.Tree, cidrs []string) error {
	for _, cidr := range cidrs {
		if err := tree.AddCIDR(cidr, true); err != nil && err != nradix.ErrNodeBusy {
			return errors.Annotatef(err, "cannot add network %s", cidr)
		}
	}

	return nil
}

func networkToCIDRs(network string) (subnets []string, err error) {
	pos := strings.IndexByte(network, '-')
	if pos == -1 {
		_, ipnet, err := net.ParseCIDR(network)
		if err != nil {
			return nil, errors.NotValidf("cidr %q", network)
		}

		return []string{ipnet.String()}, nil
	}

	start := strings.TrimSpace(network[:pos])
	finish := strings.TrimSpace(network[pos+1:])

	if net.ParseIP(start) == nil || net.ParseIP(finish) == nil {
		return nil, errors.NotValidf("range %q", network)
	}

	defer func() {
		if rec := recover(); rec != nil {
			switch x := rec.(type) {
			case string:
				err = errors.Annotate(errors.New(x), "incorrect range")
			case error:
				err = errors.Annotate(x, "incorrect range")
			default:
				err = errors.Errorf("incorrect range %s", network)
			}
		}
	}()

	subnets, err = cidrman.IPRangeToCIDRs(start, finish)

	return subnets, err
}
